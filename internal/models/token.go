package models

// TokenPair as issued by the identity service on register, login and refresh.
// RefreshToken may be empty: the server is not obliged to rotate it on
// every refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// RegisterResult is the register endpoint response: the created profile
// plus, when the server decides to auto-login, a token pair.
type RegisterResult struct {
	User   User       `json:"user"`
	Tokens *TokenPair `json:"tokens,omitempty"`
}
