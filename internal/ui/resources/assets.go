// Package resources serves the dashboard's static assets.
package resources

// StaticDirectoryPath is the static asset directory relative to the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(name string) string {
	return "/static/" + name
}
