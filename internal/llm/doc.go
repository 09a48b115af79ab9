// Package llm provides the inference client used to turn listing text into
// structured item data. It targets OpenAI-compatible chat-completion
// endpoints (Groq in production) and classifies capacity rejections so
// callers can fall back to a cheaper model tier.
package llm
