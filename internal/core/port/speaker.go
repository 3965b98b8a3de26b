package port

// Speaker hands a result message to the speech collaborator. Implementations
// are fire-and-forget: Speak returns immediately and the caller never
// observes playback outcome.
type Speaker interface {
	Speak(text, language string)
}
