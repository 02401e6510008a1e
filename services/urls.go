package services

import (
	"fmt"
	"strings"

	"github.com/rpupo63/unified-blog-backend/config"
)

// GetBaseURL retrieves the public site URL from configuration. BLOG_BASE_URL
// is kept as a fallback for older deployments.
func GetBaseURL(cfg map[string]string) string {
	if baseURL := config.GetString(cfg, "BASE_URL", ""); baseURL != "" {
		return baseURL
	}
	return config.GetString(cfg, "BLOG_BASE_URL", "")
}

// BuildBlogPostURL constructs a blog post URL from base URL and post slug
// Parameters:
//   - baseURL: The base URL (e.g., "https://example.com")
//   - slug: The blog post slug
//
// Returns:
//   - The full blog post URL (e.g., "https://example.com/blog/{slug}"), or
//     an empty string when either part is missing
func BuildBlogPostURL(baseURL, slug string) string {
	if baseURL == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/blog/%s", strings.TrimSuffix(baseURL, "/"), slug)
}

// BuildObjectURL joins a public base URL and an object key.
func BuildObjectURL(baseURL, key string) string {
	if baseURL == "" || key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), strings.TrimPrefix(key, "/"))
}
