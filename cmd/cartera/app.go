package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/dquisbert/cartera/internal/api"
	"github.com/dquisbert/cartera/internal/logger"
	"github.com/dquisbert/cartera/internal/models"
	"github.com/dquisbert/cartera/internal/session"
	"github.com/dquisbert/cartera/internal/tokenstore"
	"github.com/dquisbert/cartera/internal/transactions"
	"github.com/dquisbert/cartera/internal/web"
)

type App struct {
	config   *Config
	logger   logger.Logger
	sessions *session.Manager
	txs      *transactions.Service
}

func NewApp(c *Config) (*App, error) {
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	storePath := c.StorePath
	if storePath == "" {
		storePath, err = tokenstore.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("error while resolving session file path. Err: %w", err)
		}
	}
	store, err := tokenstore.NewFileStore(storePath)
	if err != nil {
		return nil, fmt.Errorf("error while opening session store. Err: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL: c.APIAddr,
		Tokens:  store,
		Timeout: c.Timeout,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating api client. Err: %w", err)
	}

	sessions, err := session.NewManager(session.Config{
		API:    client,
		Store:  store,
		Logger: log,
		OnSessionEnd: func(reason string) {
			log.Info("Session ended", "reason", reason)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating session manager. Err: %w", err)
	}

	return &App{
		config:   c,
		logger:   log,
		sessions: sessions,
		txs:      transactions.NewService(client),
	}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: cartera <register|login|logout|logout-all|refresh|whoami|verify|status|transactions|serve>")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Println("Sesión cerrada en este dispositivo")
		return nil
	case "logout-all":
		a.sessions.LogoutAll(ctx)
		fmt.Println("Todas las sesiones fueron cerradas")
		return nil
	case "refresh":
		pair, err := a.sessions.Refresh(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Token renovado, expira:", mustExpiry(pair.AccessToken))
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "verify":
		if err := a.sessions.Verify(ctx); err != nil {
			return err
		}
		fmt.Println("El token es válido")
		return nil
	case "status":
		if a.sessions.IsAuthenticated(ctx) {
			fmt.Println("Sesión activa")
		} else {
			fmt.Println("Sin sesión activa")
		}
		return nil
	case "transactions":
		return a.transactions(ctx, rest)
	case "serve":
		return a.serve(ctx)
	default:
		return fmt.Errorf("comando desconocido %q", cmd)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	input := session.RegisterInput{}
	fs.StringVar(&input.Username, "username", "", "Nombre de usuario")
	fs.StringVar(&input.Email, "email", "", "Correo electrónico")
	fs.StringVar(&input.Password, "password", "", "Contraseña")
	fs.StringVar(&input.ConfirmPassword, "confirm-password", "", "Confirmación de contraseña")
	fs.StringVar(&input.FullName, "full-name", "", "Nombre completo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.sessions.Register(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Cuenta creada: %s <%s>\n", result.User.Username, result.User.Email)
	if result.Tokens != nil {
		fmt.Println("Sesión iniciada automáticamente")
	}
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "Correo electrónico")
	password := fs.String("password", "", "Contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.sessions.Login(ctx, *email, *password); err != nil {
		return err
	}

	if user, ok := a.sessions.User(); ok {
		fmt.Printf("Hola, %s\n", user.FullName)
	} else {
		fmt.Println("Sesión iniciada")
	}
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	user, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	if user.FullName != "" {
		fmt.Println(user.FullName)
	}
	return nil
}

func (a *App) transactions(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		txs, err := a.txs.List(ctx)
		if err != nil {
			return err
		}

		user, _ := a.sessions.User()
		for _, tx := range txs {
			sign := "-"
			if tx.Incoming(user.Username) {
				sign = "+"
			}
			fmt.Printf("%6d  %s  %s -> %s  %sBs %s  [%s]\n",
				tx.ID, tx.Time.Format("02/01/2006 15:04"),
				tx.FromAccount, tx.ToAccount, sign, tx.Amount.StringFixed(2), tx.Status)
		}
		fmt.Printf("Movimiento neto: Bs %s\n", transactions.NetMovement(txs, user.Username).StringFixed(2))
		return nil
	case "add":
		return a.addTransaction(ctx, args[1:])
	default:
		return fmt.Errorf("uso: cartera transactions [list|add]")
	}
}

func (a *App) addTransaction(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("transactions add", pflag.ContinueOnError)
	from := fs.String("from", "", "Cuenta origen")
	to := fs.String("to", "", "Cuenta destino")
	amount := fs.String("amount", "", "Monto")
	location := fs.String("location", "", "Ubicación")
	if err := fs.Parse(args); err != nil {
		return err
	}

	monto, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("monto inválido %q: %w", *amount, err)
	}

	tx, err := a.txs.Create(ctx, models.TransactionCreate{
		FromAccount: *from,
		ToAccount:   *to,
		Amount:      monto,
		Location:    *location,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Transacción %d creada [%s]\n", tx.ID, tx.Status)
	return nil
}

// serve runs the local web UI until the context is cancelled
func (a *App) serve(ctx context.Context) error {
	srv := web.NewServer(a.sessions, a.txs, a.logger)

	httpServer := &http.Server{
		Addr:    a.config.ListenAddr,
		Handler: srv.Router(),
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			a.logger.Error("Web UI shutdown timeout exceeded, forcing shutdown")
		}
		a.logger.Info("Web UI stopped")
		close(idleConnsClosed)
	}()

	a.logger.Info("Starting web UI", "addr", a.config.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func mustExpiry(token string) string {
	expiry, err := session.DecodeExpiry(token)
	if err != nil {
		return "desconocido"
	}
	return expiry.Local().Format("02/01/2006 15:04")
}
