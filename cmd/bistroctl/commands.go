package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bistroboss/config"
	"bistroboss/internal/domain"
	"bistroboss/internal/pkg/database"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/token"
	"bistroboss/internal/repository/statsrepo"
	"bistroboss/internal/repository/userrepo"
	"bistroboss/internal/service/statsservice"
	"bistroboss/internal/service/userservice"
)

// env é o ambiente compartilhado pelos subcomandos.
type env struct {
	cfg *config.Config
	db  *sql.DB
	log logger.Logger
}

func openEnv() (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco: %w", err)
	}
	return &env{cfg: cfg, db: db, log: log}, nil
}

func (e *env) userService() *userservice.UserService {
	repo := userrepo.NewUserRepository(e.db, e.cfg.DBTimeout, e.log)
	return userservice.NewService(repo, token.NewService(e.cfg.JWTSecretKey, e.cfg.TokenExpiry), e.log)
}

func promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [email]",
		Short: "Torna admin o usuário com o email informado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			result, err := e.userService().PromoteByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result.ModifiedCount == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s já era admin\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s promovido a admin\n", args[0])
			return nil
		},
	}
}

// tokenCmd não acessa o banco: o token só carrega o email.
func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [email]",
		Short: "Emite um JWT para testes manuais da API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			tok, err := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry).Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Mostra os números do painel administrativo",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			svc := statsservice.NewService(statsrepo.NewStatsRepository(e.db, e.cfg.DBTimeout, e.log), e.log)
			stats, err := svc.AdminStats(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			return printStats(cmd.OutOrStdout(), stats, asJSON)
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Saída em JSON")
	return cmd
}

func printStats(w io.Writer, stats domain.AdminStats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Fprintf(w, "users:    %d\n", stats.Users)
	fmt.Fprintf(w, "products: %d\n", stats.Products)
	fmt.Fprintf(w, "orders:   %d\n", stats.Orders)
	fmt.Fprintf(w, "revenue:  %s\n", stats.Revenue)
	return nil
}
