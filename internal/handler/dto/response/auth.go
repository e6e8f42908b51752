package response

import "medslot/internal/usecase/commands"

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func FromTokenPair(pair commands.TokenPair) *TokenPairResponse {
	return &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	}
}

type CreatedResponse struct {
	ID string `json:"id"`
}
