package ports

// PromptPort asks the user a yes/no question. Injected so the core never
// owns terminal IO.
type PromptPort interface {
	Confirm(message string) bool
}
