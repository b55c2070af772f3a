// Package handlers provides Telnet session handling and command processing.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/frontend/telnet"
	"github.com/cory-johannsen/charter/internal/storage/postgres"
)

// AccountStore defines the account persistence operations required by AuthHandler.
type AccountStore interface {
	Create(ctx context.Context, username, password string) (postgres.Account, error)
	Authenticate(ctx context.Context, username, password string) (postgres.Account, error)
}

const welcomeBanner = `
` + telnet.Bold + telnet.BrightCyan + `
  ██████╗██╗  ██╗ █████╗ ██████╗ ████████╗███████╗██████╗
 ██╔════╝██║  ██║██╔══██╗██╔══██╗╚══██╔══╝██╔════╝██╔══██╗
 ██║     ███████║███████║██████╔╝   ██║   █████╗  ██████╔╝
 ██║     ██╔══██║██╔══██║██╔══██╗   ██║   ██╔══╝  ██╔══██╗
 ╚██████╗██║  ██║██║  ██║██║  ██║   ██║   ███████╗██║  ██║
  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝` + telnet.Reset + `

` + telnet.BrightYellow + `  The Kongo Coast, 1648 — Govern a Colonial Charter by Dice and Dispatch` + telnet.Reset + `

  Type ` + telnet.Green + `login <username> <password>` + telnet.Reset + ` to connect.
  Type ` + telnet.Green + `register <username> <password>` + telnet.Reset + ` to create an account.
  Type ` + telnet.Green + `quit` + telnet.Reset + ` to disconnect.
`

var authHelp = telnet.Colorize(telnet.BrightWhite, "Available commands:") + "\r\n" +
	telnet.Colorize(telnet.Green, "  login <username> <password>") + "    — Log in to your account\r\n" +
	telnet.Colorize(telnet.Green, "  register <username> <password>") + " — Create a new account\r\n" +
	telnet.Colorize(telnet.Green, "  help") + "                           — Show this help\r\n" +
	telnet.Colorize(telnet.Green, "  quit") + "                           — Disconnect\r\n"

// AuthHandler implements telnet.SessionHandler and processes the
// authentication loop for a connected client, then hands the session
// to the campaign menu.
type AuthHandler struct {
	accounts AccountStore
	game     *GameHandler
	logger   *zap.Logger
}

// NewAuthHandler creates an AuthHandler backed by the given account store.
//
// Precondition: accounts, game, and logger must be non-nil.
// Postcondition: Returns an AuthHandler ready to handle sessions.
func NewAuthHandler(accounts AccountStore, game *GameHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		game:     game,
		logger:   logger,
	}
}

// HandleSession implements telnet.SessionHandler. It shows the welcome banner
// and processes authentication commands until the player logs in or quits.
// A successful login hands the connection to the campaign menu and the
// session ends when the menu returns.
func (h *AuthHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	addr := conn.RemoteAddr().String()

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return err
		}

		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "> ")); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch cmd := strings.ToLower(fields[0]); cmd {
		case "quit", "exit":
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			h.logger.Info("client quit",
				zap.String("remote_addr", addr),
				zap.Duration("session_duration", time.Since(start)),
			)
			return nil

		case "login":
			acct, err := h.handleLogin(ctx, conn, fields[1:])
			if err != nil {
				return err
			}
			if acct.ID == 0 {
				continue // failure was reported to the player, keep prompting
			}
			h.logger.Info("player logged in",
				zap.String("remote_addr", addr),
				zap.String("username", acct.Username),
				zap.Duration("login_time", time.Since(start)),
			)
			return h.game.CampaignMenu(ctx, conn, acct)

		case "register":
			if err := h.handleRegister(ctx, conn, fields[1:]); err != nil {
				return err
			}

		case "help":
			_ = conn.Write([]byte(authHelp))

		default:
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command: %s. Type 'help' for available commands.", cmd))
		}
	}
}

// handleLogin authenticates a player. A zero-ID account with a nil error
// means the failure was already shown to the player and the auth loop
// should continue; a non-nil error ends the session.
func (h *AuthHandler) handleLogin(ctx context.Context, conn *telnet.Conn, args []string) (postgres.Account, error) {
	if len(args) < 2 {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: login <username> <password>"))
		return postgres.Account{}, nil
	}

	acct, err := h.accounts.Authenticate(ctx, args[0], args[1])
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrAccountNotFound):
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Account not found. Use 'register' to create one."))
		case errors.Is(err, postgres.ErrInvalidCredentials):
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Invalid password."))
		default:
			h.logger.Error("authentication error", zap.Error(err), zap.String("username", args[0]))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
		}
		return postgres.Account{}, nil
	}

	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"Welcome back, %s! (account #%d)", acct.Username, acct.ID))
	return acct, nil
}

func (h *AuthHandler) handleRegister(ctx context.Context, conn *telnet.Conn, args []string) error {
	if len(args) < 2 {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: register <username> <password>"))
	}

	username, password := args[0], args[1]
	if msg := validateCredentials(username, password); msg != "" {
		return conn.WriteLine(telnet.Colorize(telnet.Red, msg))
	}

	acct, err := h.accounts.Create(ctx, username, password)
	if err != nil {
		if errors.Is(err, postgres.ErrAccountExists) {
			return conn.WriteLine(telnet.Colorize(telnet.Red, "That username is already taken."))
		}
		h.logger.Error("registration error", zap.Error(err), zap.String("username", username))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
	}

	return conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"Account created: %s (#%d). You may now 'login'.", acct.Username, acct.ID))
}

// validateCredentials returns a player-facing message describing the first
// problem with the supplied credentials, or "" when they are acceptable.
func validateCredentials(username, password string) string {
	if len(username) < 3 || len(username) > 32 {
		return "Username must be 3-32 characters."
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters."
	}
	return ""
}
