// Package ai wraps the generative-text service used for takeaways, topic
// suggestions and grounded deep dives. Every operation degrades to a fixed
// fallback instead of returning an error, and successful answers are cached.
package ai
