package schema

const (
	ViralTweetPromptTool    = "get_rohit_sharma_boundary_viral_tweet_prompt"
	OneLinerTweetPromptTool = "get_rohit_sharma_boundary_one_liner_tweet_prompt"

	// ContentDumpArg is the single argument both prompt tools accept.
	ContentDumpArg = "content_dump"
)

// PromptToolResponse is the JSON document returned by the prompt tools.
type PromptToolResponse struct {
	Prompt string  `json:"prompt"`
	Error  *string `json:"error"`
}
