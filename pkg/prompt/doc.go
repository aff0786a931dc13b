// Package prompt builds dataset schemas interactively. Prompts go through a
// PromptDriver so the flow can run against survey in a terminal or a scripted
// driver in tests.
package prompt
