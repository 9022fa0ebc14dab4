// Package openai provides the production ai.Embedder implementation for
// OpenAI-compatible embedding APIs (OpenAI, Ollama, LocalAI, vLLM).
package openai
