package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public catalog browsing and login/signup need no credentials
	return []string{
		"/api/products",
		"/api/products/:id",
		"/api/products/trending",
		"/api/categories",
		"/api/suggestions",
		"/api/search",
		"/api/auth/login",
		"/api/auth/signup",
		"/api/feedback",
	}
}
