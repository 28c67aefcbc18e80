package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ayabeauty/storefront/config"
	redisadapter "github.com/ayabeauty/storefront/internal/adapters/redis"
	"github.com/ayabeauty/storefront/internal/bootstrap"
	"github.com/ayabeauty/storefront/internal/data"
	"github.com/ayabeauty/storefront/internal/domain/model"
	"github.com/ayabeauty/storefront/internal/migrate"
	"github.com/ayabeauty/storefront/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 2 * time.Minute
)

var (
	errMemoryTokenStore = errors.New("TOKEN_STORE=memory keeps sessions inside the server process; restart it to revoke them")
	errAborted          = errors.New("aborted")
	errPasswordMismatch = errors.New("password does not match ADMIN_PASSWORD")
)

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(name string, args []string) (migrateOptions, error) {
	var opts migrateOptions
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "maximum time to wait for the database")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultMigrationTimeout
	}
	return opts, nil
}

func runMigrate(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate", args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, closeDB, err := connectDB(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func runMigrateStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate-status", args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, closeDB, err := connectDB(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	statuses, err := migrate.List(ctx, db)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	return printMigrationStatus(cmdCtx.Stdout, statuses)
}

func printMigrationStatus(w io.Writer, statuses []migrate.Status) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\n"); err != nil {
		return err
	}
	for _, s := range statuses {
		applied := "pending"
		if s.Applied {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\n", s.Version, applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func parseProductFlags(args []string) (model.ProductFilter, error) {
	var filter model.ProductFilter
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.StringVar(&filter.Category, "category", "", "category name")
	fs.StringVar(&filter.Subcategory, "subcategory", "", "subcategory name")
	fs.StringVar(&filter.Search, "q", "", "case-insensitive search text")
	fs.IntVar(&filter.Limit, "limit", model.DefaultListLimit, "maximum rows")
	fs.IntVar(&filter.Offset, "offset", 0, "rows to skip")
	if err := fs.Parse(args); err != nil {
		return filter, err
	}
	filter.Normalize()
	return filter, nil
}

func runListProducts(cmdCtx *commandContext, args []string) error {
	filter, err := parseProductFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	db, closeDB, err := connectDB(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	products, err := data.NewProductRepo(db).List(ctx, filter)
	if err != nil {
		return err
	}
	return printProducts(cmdCtx.Stdout, products)
}

func printProducts(w io.Writer, products []*model.Product) error {
	if len(products) == 0 {
		return writef(w, "(no products found)\n")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tPRICE\tCATEGORY\tSUBCATEGORY\tIMAGE\n"); err != nil {
		return err
	}
	for _, p := range products {
		image := "-"
		if p.ImagePublicID != "" {
			image = p.ImagePublicID
		}
		if err := writef(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Price, p.Category, p.Subcategory, image); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\nTotal: %d\n", len(products))
}

type sessionsFlushOptions struct {
	Yes bool
}

func runSessionsFlush(cmdCtx *commandContext, args []string) error {
	var opts sessionsFlushOptions
	fs := flag.NewFlagSet("sessions-flush", flag.ContinueOnError)
	fs.BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmdCtx.Config.Auth.TokenStore != config.TokenStoreRedis {
		return errMemoryTokenStore
	}
	if !opts.Yes {
		if err := confirm(cmdCtx.Stdin, cmdCtx.Stdout, "Revoke every admin session? [y/N] "); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	client, closeRedis, err := connectRedis(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis()

	store := redisadapter.NewTokenStore(client, redisadapter.TokenStoreOptions{
		Prefix: cmdCtx.Config.Redis.KeyPrefix + redisadapter.DefaultTokenPrefix,
	})
	n, err := store.RevokeAll(ctx)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Info("admin sessions revoked", "count", n)
	return writef(cmdCtx.Stdout, "Revoked %d session(s)\n", n)
}

func confirm(in io.Reader, out io.Writer, prompt string) error {
	if err := writef(out, "%s", prompt); err != nil {
		return err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}

func runCheckPassword(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.Config.Auth.Validate(); err != nil {
		return err
	}
	line, err := bufio.NewReader(cmdCtx.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	candidate := strings.TrimRight(line, "\r\n")

	hash, err := service.HashSecret(cmdCtx.Config.Auth.AdminPassword, bcrypt.MinCost)
	if err != nil {
		return err
	}
	if !service.VerifySecret(hash, candidate) {
		return errPasswordMismatch
	}
	return writef(cmdCtx.Stdout, "password matches\n")
}
