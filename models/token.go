package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token payload'ı.
//
// models paketinde durur çünkü services ve middleware ikisi de kullanır;
// her katman models'e bağımlı olabilir, birbirine değil.
type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthTokens, login/register sonrası dönen yanıt.
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // saniye
	User        User   `json:"user"`
}

// AuthContext, bir request'in kimlik bilgisidir.
// Anonim request'lerde sıfır değer (IsAuthenticated=false) kullanılır.
type AuthContext struct {
	IsAuthenticated bool
	UserID          int64
}

// Anonymous, kimliği doğrulanmamış bir AuthContext döner.
func Anonymous() AuthContext {
	return AuthContext{}
}

// AuthenticatedAs, verilen kullanıcı için AuthContext döner.
func AuthenticatedAs(userID int64) AuthContext {
	return AuthContext{IsAuthenticated: true, UserID: userID}
}
