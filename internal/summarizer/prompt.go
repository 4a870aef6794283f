package summarizer

// NoSummary is returned when a backend answers without any generated text.
const NoSummary = "No summary generated."

func buildPrompt(instruction, chunk string) string {
	return instruction + "\n" + chunk
}
