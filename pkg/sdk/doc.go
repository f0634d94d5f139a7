// Package tapssp provides an embedded Go client for the tapssp passage
// retrieval engine: TF-IDF indexing, cosine similarity search, and
// optional answer generation over an OpenAI-compatible API.
//
// The index is in-memory and safe for concurrent use.
//
//	client := tapssp.New()
//	id, _ := client.Add(ctx, "the cat sat on the mat")
//	matches, _ := client.Search(ctx, "cat", 3)
//
// With a generation provider, Ask retrieves the most relevant passages
// and uses them as grounding context:
//
//	client := tapssp.New(
//	    tapssp.WithOpenAI(apiKey, baseURL, "gpt-4o-mini"),
//	)
//	answer, _ := client.Ask(ctx, "where did the cat sit?")
package tapssp
