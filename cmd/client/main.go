package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/export"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/rotation"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: note-client [flags] <command> [command flags]

commands:
  provision        create an account with encrypted storage
  list             list decrypted notes
  get              fetch and decrypt one note
  put              encrypt and upload a note
  change-password  rotate the account password
  regen-recovery   issue a fresh recovery phrase
  adopt-password   set a password on a PIN-protected account
  export           decrypt and export all notes as JSON
`

type clientApp struct {
	vault  *service.ClientVaultService
	server adapter.VaultServer
	keys   crypto.KeyChainService
	cache  *session.KeyCache
	log    *logger.Logger

	in *bufio.Reader
}

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.Storage.LogPath != "" {
		log = logger.NewFileLogger("note-client", cfg.Storage.LogPath)
	} else {
		log = logger.NewLogger("note-client")
	}

	ctx := context.Background()

	server, err := adapter.NewHTTPVaultServer(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.ServerURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create vault server adapter")
	}

	noteCache, err := store.NewNoteCache(ctx, cfg.Storage.CachePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local note cache")
	}
	defer noteCache.Close()

	keys := crypto.NewKeyChainService()
	keyCache := session.NewKeyCache()
	defer keyCache.ClearAll()

	app := &clientApp{
		vault:  service.NewClientVaultService(server, keys, keyCache, noteCache, log),
		server: server,
		keys:   keys,
		cache:  keyCache,
		log:    log,
		in:     bufio.NewReader(os.Stdin),
	}

	if err = app.run(ctx, flag.Args()); err != nil {
		log.Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *clientApp) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "provision":
		return a.provision(ctx, rest)
	case "list":
		return a.list(ctx, rest)
	case "get":
		return a.get(ctx, rest)
	case "put":
		return a.put(ctx, rest)
	case "change-password":
		return a.changePassword(ctx, rest)
	case "regen-recovery":
		return a.regenRecovery(ctx, rest)
	case "adopt-password":
		return a.adoptPassword(ctx, rest)
	case "export":
		return a.export(ctx, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *clientApp) provision(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("provision", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	result, err := a.vault.Provision(ctx, *login, *name, password)
	if err != nil {
		return err
	}

	fmt.Printf("account created, user id %d\n", result.User.UserID)
	fmt.Println("recovery phrase (write it down, it will not be shown again):")
	fmt.Println(result.RecoveryPhrase)
	return nil
}

func (a *clientApp) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := a.login(ctx, *login)
	if err != nil {
		return err
	}

	notes, err := a.vault.ListNotes(ctx, token.UserID)
	if err != nil {
		return err
	}

	for _, note := range notes {
		fmt.Printf("%s\t%s\n", note.NoteID, note.Title)
	}
	return nil
}

func (a *clientApp) get(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	id := fs.String("id", "", "note id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	noteID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid note id: %w", err)
	}

	token, err := a.login(ctx, *login)
	if err != nil {
		return err
	}

	note, err := a.vault.LoadNote(ctx, token.UserID, noteID)
	if err != nil {
		return err
	}

	fmt.Println(note.Title)
	fmt.Println(note.Content)
	return nil
}

func (a *clientApp) put(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	id := fs.String("id", "", "note id (empty creates a new note)")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	note := models.Note{Title: *title, Content: *content}
	if *id != "" {
		noteID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid note id: %w", err)
		}
		note.NoteID = noteID
	}

	token, err := a.login(ctx, *login)
	if err != nil {
		return err
	}

	saved, err := a.vault.SaveNote(ctx, token.UserID, note)
	if err != nil {
		return err
	}

	fmt.Printf("saved note %s at version %d\n", saved.NoteID, saved.Version)
	return nil
}

func (a *clientApp) changePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, err := a.prompt("Current password: ")
	if err != nil {
		return err
	}
	token, err := a.loginWith(ctx, *login, current)
	if err != nil {
		return err
	}

	next, err := a.prompt("New password: ")
	if err != nil {
		return err
	}

	flow := rotation.NewPasswordChange(a.server, a.keys, a.cache, a.log)
	result, err := flow.Run(ctx, token.UserID, *login, current, next)
	if err != nil {
		return err
	}

	fmt.Println("password changed")
	fmt.Println("new recovery phrase (the previous one no longer works):")
	fmt.Println(result.RecoveryPhrase)
	return nil
}

func (a *clientApp) regenRecovery(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("regen-recovery", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}
	token, err := a.loginWith(ctx, *login, password)
	if err != nil {
		return err
	}

	flow := rotation.NewRecoveryRegen(a.server, a.keys, a.cache, a.log)
	result, err := flow.Run(ctx, token.UserID, password)
	if err != nil {
		return err
	}

	fmt.Println("new recovery phrase (the previous one no longer works):")
	fmt.Println(result.RecoveryPhrase)
	return nil
}

func (a *clientApp) adoptPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("adopt-password", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	token := fs.String("token", "", "bearer token issued by the identity provider")
	userID := fs.Int64("user-id", 0, "account user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" || *userID == 0 {
		return fmt.Errorf("adopt-password requires -token and -user-id")
	}

	a.server.SetToken(*token)

	pin, err := a.prompt("PIN: ")
	if err != nil {
		return err
	}

	flow := rotation.NewPINAdoption(a.server, a.keys, a.cache, a.log)
	if err = flow.SubmitPIN(ctx, *userID, pin); err != nil {
		return err
	}

	password, err := a.prompt("New password: ")
	if err != nil {
		return err
	}

	result, err := flow.SubmitPassword(ctx, *login, password)
	if err != nil {
		return err
	}

	fmt.Println("password set, PIN revoked")
	fmt.Println("recovery phrase (write it down, it will not be shown again):")
	fmt.Println(result.RecoveryPhrase)
	return nil
}

func (a *clientApp) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	login := fs.String("login", "", "account login")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := a.login(ctx, *login)
	if err != nil {
		return err
	}

	exporter := export.NewBulkExporter(a.server, a.keys, a.cache, a.log)
	report, err := exporter.Export(ctx, token.UserID)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		f, ferr := os.OpenFile(*out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if ferr != nil {
			return fmt.Errorf("open output file: %w", ferr)
		}
		defer f.Close()
		w = f
	}

	if err = exporter.WriteJSON(w, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "exported %d notes, %d failed\n", report.Exported, report.Failed)
	return nil
}

// login prompts for the password, authenticates with the vault server and
// leaves the session unlocked.
func (a *clientApp) login(ctx context.Context, login string) (models.Token, error) {
	password, err := a.prompt("Password: ")
	if err != nil {
		return models.Token{}, err
	}

	return a.loginWith(ctx, login, password)
}

func (a *clientApp) loginWith(ctx context.Context, login, password string) (models.Token, error) {
	if login == "" {
		return models.Token{}, fmt.Errorf("missing -login")
	}

	return a.vault.Login(ctx, login, password)
}

func (a *clientApp) prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("empty input")
	}
	return value, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
