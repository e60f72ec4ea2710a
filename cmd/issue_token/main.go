// issue_token emite un token de acceso firmado con JWT_SECRET para un operador.
//
// Uso: go run ./cmd/issue_token -user <id> -role admin|cashier|viewer [-exp 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/titya18/pos-react-front-office-sub001/internal/application/auth"
	"github.com/titya18/pos-react-front-office-sub001/internal/application/dto"
	"github.com/titya18/pos-react-front-office-sub001/pkg/config"
)

func main() {
	userID := flag.String("user", "", "ID del usuario")
	role := flag.String("role", "cashier", "rol: admin, cashier o viewer")
	exp := flag.Int("exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	out, err := uc.IssueToken(dto.IssueTokenRequest{UserID: *userID, Role: *role, ExpMinutes: *exp})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Token para %s (%s), vence %s\n", out.UserID, out.Role, out.ExpiresAt.Format("2006-01-02 15:04"))
	fmt.Println(out.Token)
}
