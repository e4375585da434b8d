package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/infocart/app/models"
	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/config"
	"github.com/shashiranjanraj/infocart/pkg/auth"
	"github.com/shashiranjanraj/infocart/pkg/database"
)

var (
	seedMasterUsername string
	seedMasterPassword string
)

// infocart seed:master — create the master account, or reset its password
// when it already exists. Master accounts never come from the register
// endpoint.
var seedMasterCmd = &cobra.Command{
	Use:   "seed:master",
	Short: "Create or reset the master account",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := seedMasterPassword
		if password == "" {
			password = os.Getenv("MASTER_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("seed:master: provide --password or set MASTER_PASSWORD")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		store, err := repositories.NewMongoStore(ctx, db)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		err = store.Users.UpdatePassword(ctx, seedMasterUsername, hash)
		if errors.Is(err, repositories.ErrNotFound) {
			user := &models.User{
				Username: seedMasterUsername,
				Password: hash,
				Role:     models.RoleMaster,
			}
			if err := store.Users.Create(ctx, user); err != nil {
				return err
			}
			fmt.Printf("Master account %q created.\n", seedMasterUsername)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Password updated for master account %q.\n", seedMasterUsername)
		return nil
	},
}

func init() {
	seedMasterCmd.Flags().StringVar(&seedMasterUsername, "username", "master", "master account username")
	seedMasterCmd.Flags().StringVar(&seedMasterPassword, "password", "", "master password (falls back to MASTER_PASSWORD)")
}
