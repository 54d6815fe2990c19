package constant

// ContextJudgePromptTemplate asks for a binary yes/no decision on whether
// the current query depends on the conversation so far. Placeholders:
// transcript of the recent window, current query.
const ContextJudgePromptTemplate = `You are a conversation analyst. Decide if the user's new query depends on the previous conversation to be understood.

Previous conversation:
%s

New query: "%s"

A query DEPENDS on the conversation when it:
- uses pronouns or possessives referring to something mentioned before (he, she, it, his, her, "son", "sa", "il", "elle")
- elides the subject ("what about...", "and the followers?", "et les ventes ?")
- refers to an earlier topic ("previously", "as you said", "comme avant")
- only makes sense as a follow-up to a prior question or answer

A query is INDEPENDENT when it introduces a fully self-contained question.

Respond with exactly one word: "yes" if the query depends on the conversation, "no" otherwise. No other text.`

// ReformulatorPromptFrench rewrites a context-dependent French query into a
// standalone one. Placeholders: transcript, query.
const ReformulatorPromptFrench = `Tu es un assistant de reformulation. Voici la conversation précédente :

%s

Nouvelle question de l'utilisateur : "%s"

Cette question dépend du contexte ci-dessus. Réécris-la en français comme une question autonome et complète, en remplaçant les pronoms et les références implicites par les noms et sujets explicites mentionnés dans la conversation.

Réponds uniquement avec la question reformulée, sans explication ni guillemets.`

// ReformulatorPromptEnglish is the English counterpart. Placeholders:
// transcript, query.
const ReformulatorPromptEnglish = `You are a reformulation assistant. Here is the previous conversation:

%s

The user's new question: "%s"

This question depends on the context above. Rewrite it in English as a complete, self-contained question, replacing pronouns and implicit references with the explicit names and subjects mentioned in the conversation.

Respond only with the reformulated question, without explanation or quotation marks.`
