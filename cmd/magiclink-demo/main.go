// Command magiclink-demo runs a minimal passwordless login flow end to end:
// a login form posts an email address, the issuance callback stores the
// verification key in a keystore and writes the link email to disk via the
// dev sender, and the callback route redeems the link by recovering the key
// from the visitor's cookie-bound keystore entry.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/magiclink"
	"github.com/dmitrymomot/magiclink/config"
	"github.com/dmitrymomot/magiclink/keystore"
	"github.com/dmitrymomot/magiclink/mailer"
)

type appConfig struct {
	Addr        string        `env:"ADDR" envDefault:":8080"`
	BaseURL     string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	ExpiresIn   time.Duration `env:"MAGICLINK_EXPIRES_IN" envDefault:"5m"`
	EmailDir    string        `env:"EMAIL_DIR" envDefault:"tmp/emails"`
	ProductName string        `env:"PRODUCT_NAME" envDefault:"magiclink demo"`
}

// sessionCookie correlates the browser that requested the link with the
// stored verification key. It never contains the key itself.
const sessionCookie = "magiclink_session"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg appConfig
	config.MustLoad(&cfg)

	store := keystore.NewMemory(time.Minute)
	defer store.Close()

	sender := mailer.NewDevSender(cfg.EmailDir, cfg.ProductName)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", loginForm)
	r.Post("/auth", requestLink(cfg, store, sender, logger))
	r.Get("/auth/callback", redeemLink(cfg, store, logger))

	server := &http.Server{Addr: cfg.Addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", slog.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loginForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html>
<form method="post" action="/auth">
	<label>Email <input type="email" name="email" required></label>
	<button type="submit">Send me a sign-in link</button>
</form>`)
}

// requestLink runs the issuance half: the callback persists the key under a
// fresh identifier, sets the identifier cookie and sends a link carrying
// only the token.
func requestLink(cfg appConfig, store keystore.Store, sender mailer.Sender, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := magiclink.Authenticate(r,
			func(ctx context.Context, outcome magiclink.Outcome) (string, error) {
				issued, ok := outcome.(magiclink.Issued)
				if !ok {
					return "", errors.New("expected issuance outcome on the login route")
				}

				id := keystore.NewID()
				// Key outlives the token slightly so expiry is reported by
				// token verification, not by a vanished keystore entry.
				if err := store.Save(ctx, id, issued.Key, cfg.ExpiresIn+time.Minute); err != nil {
					return "", err
				}

				link := fmt.Sprintf("%s/auth/callback?token=%s", cfg.BaseURL, url.QueryEscape(issued.Token))
				if err := sender.SendLink(ctx, issued.Form["email"], link); err != nil {
					return "", err
				}

				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int((cfg.ExpiresIn + time.Minute).Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})

				return "Check your inbox - the sign-in link is on its way.", nil
			},
			magiclink.WithExpiresIn(cfg.ExpiresIn),
			magiclink.WithLogger(logger),
		)
		if err != nil {
			logger.Error("issuance failed", slog.Any("error", err))
			http.Error(w, "could not send the sign-in link", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, msg)
	}
}

// redeemLink runs the verification half: the key is recovered from the
// keystore by the cookie-bound identifier and attached to the request before
// the entry point is invoked a second time. Consume removes the key, so the
// link works exactly once.
func redeemLink(cfg appConfig, store keystore.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Error(w, "open the link in the browser you signed in from", http.StatusUnauthorized)
			return
		}

		key, err := store.Consume(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, keystore.ErrNotFound) {
				http.Error(w, "this link has already been used or has expired", http.StatusUnauthorized)
				return
			}
			logger.Error("keystore failed", slog.Any("error", err))
			http.Error(w, "something went wrong", http.StatusInternalServerError)
			return
		}

		query := r.URL.Query()
		query.Set("key", key)
		r.URL.RawQuery = query.Encode()

		email, err := magiclink.Authenticate(r,
			func(ctx context.Context, outcome magiclink.Outcome) (string, error) {
				verified, ok := outcome.(magiclink.Verified)
				if !ok {
					return "", errors.New("expected verification outcome on the callback route")
				}
				return verified.Form["email"], nil
			},
			magiclink.WithExpiresIn(cfg.ExpiresIn),
			magiclink.WithLogger(logger),
		)
		if err != nil {
			if errors.Is(err, magiclink.ErrAuthenticationFailed) {
				http.Error(w, "this link is invalid or has expired", http.StatusUnauthorized)
				return
			}
			logger.Error("verification failed", slog.Any("error", err))
			http.Error(w, "something went wrong", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
		fmt.Fprintf(w, "signed in as %s\n", email)
	}
}
