package auth

// Claims es la identidad ya resuelta del usuario que hace el request.
type Claims struct {
	UserID string
	Email  string
}
