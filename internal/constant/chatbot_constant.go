package constant

const (
	// DefaultInfluencerUID is used when the caller supplies no identifier.
	DefaultInfluencerUID = "la0NUVFtxnNnYng2JJF9i2FzkYz1"

	// Fixed greeting replies. The synthesizer returns these verbatim for
	// greeting queries, whatever the backend produced.
	GreetingReplyFrench  = "Bonjour, comment puis-je vous aider ?"
	GreetingReplyEnglish = "Hello, how can I help you?"

	// User-visible apology templates for backend failures. The %s is the
	// failure description.
	BackendErrorReplyFrench  = "Désolé, un problème est survenu : %s"
	BackendErrorReplyEnglish = "Sorry, an issue occurred: %s"

	// Failure descriptions substituted into the apology templates.
	TimeoutMessageFrench  = "la requête a expiré"
	TimeoutMessageEnglish = "the request timed out"

	// Fallback replies when the synthesis call itself fails.
	SynthesisErrorReplyFrench  = "Désolé, une erreur est survenue lors de la génération de la réponse."
	SynthesisErrorReplyEnglish = "Sorry, an error occurred while generating the response."

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
)

// GreetingWords are the utterances answered with the fixed greeting reply,
// bypassing synthesis entirely.
var GreetingWords = []string{
	"bonjour",
	"salut",
	"coucou",
	"bonsoir",
	"hello",
	"hi",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
}
