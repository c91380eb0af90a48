package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ballotz/ballotz/internal/alert"
	"github.com/ballotz/ballotz/internal/config"
	"github.com/ballotz/ballotz/internal/election"
	"github.com/ballotz/ballotz/internal/hash"
	"github.com/ballotz/ballotz/internal/ledger"
	"github.com/ballotz/ballotz/internal/storage"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ballotz",
	Short: "Ballotz - Tamper-Evident Voting Ledger",
	Long:  `A voting system backed by an append-only, hash-linked block ledger`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "ballotz.yaml", "config file path")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(registerVoterCmd)
	rootCmd.AddCommand(registerCandidateCmd)
	rootCmd.AddCommand(castCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(tallyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(menuCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ballotz v0.1.0-alpha")
		fmt.Println("Tamper-Evident Voting Ledger")
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the election ledger with a genesis block",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := os.MkdirAll(cfg.Node.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		store, err := storage.New(dbPath(cfg))
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()

		if _, err := store.LatestBlock(); err == nil {
			return fmt.Errorf("ledger already initialized at %s", dbPath(cfg))
		}

		hasher, err := hash.New(cfg.Hash.Algorithm)
		if err != nil {
			return err
		}

		chain, err := ledger.New(hasher)
		if err != nil {
			return err
		}

		genesis := chain.Genesis()
		if err := store.SaveBlock(genesis); err != nil {
			return fmt.Errorf("failed to save genesis block: %w", err)
		}

		if err := store.SetMetadata("election_name", cfg.Election.Name); err != nil {
			return err
		}
		if err := store.SetMetadata("hash_algorithm", cfg.Hash.Algorithm); err != nil {
			return err
		}
		if err := store.SetMetadata("created_at", time.Now().Format(time.RFC3339)); err != nil {
			return err
		}

		fmt.Printf("Initialized election: %s\n", cfg.Election.Name)
		fmt.Printf("Data directory: %s\n", cfg.Node.DataDir)
		fmt.Printf("Hash algorithm: %s\n", cfg.Hash.Algorithm)
		fmt.Printf("Genesis hash: %s\n", genesis.Hash)

		return nil
	},
}

var registerVoterCmd = &cobra.Command{
	Use:   "register-voter [id] [name]",
	Short: "Register a voter and seal the registration into a block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		block, err := elec.RegisterVoter(args[0], args[1])
		if err != nil {
			return err
		}

		if err := store.SaveBlock(block); err != nil {
			return fmt.Errorf("failed to save block: %w", err)
		}

		fmt.Printf("Voter '%s' (%s) registered in block %d\n", args[1], args[0], block.Index)
		return nil
	},
}

var registerCandidateCmd = &cobra.Command{
	Use:   "register-candidate [id] [name]",
	Short: "Register a candidate and seal the registration into a block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		block, err := elec.RegisterCandidate(args[0], args[1])
		if err != nil {
			return err
		}

		if err := store.SaveBlock(block); err != nil {
			return fmt.Errorf("failed to save block: %w", err)
		}

		fmt.Printf("Candidate '%s' (%s) registered in block %d\n", args[1], args[0], block.Index)
		return nil
	},
}

var castCmd = &cobra.Command{
	Use:   "cast [voter-id] [candidate-id]",
	Short: "Cast a vote and seal it into a block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		block, err := elec.CastVote(args[0], args[1])
		if err != nil {
			return err
		}

		if err := store.SaveBlock(block); err != nil {
			return fmt.Errorf("failed to save block: %w", err)
		}

		fmt.Printf("Vote cast: %s -> %s (block %d)\n", args[0], args[1], block.Index)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every block in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, chain, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, block := range chain.Blocks() {
			printBlock(block)
		}

		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify ledger integrity by recomputing every hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, chain, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Printf("Verifying %d blocks...\n", chain.Len())

		if err := chain.Validate(); err != nil {
			fmt.Printf("  ❌ FAILED: %v\n", err)

			if te := ledger.AsTamperError(err); te != nil && cfg.Alerts.Enabled {
				am := alert.NewManager(cfg.Alerts.Enabled, cfg.Alerts.SlackWebhook)
				if alertErr := am.SendTamperAlert(cfg.Election.Name, te.Index, te.Reason); alertErr != nil {
					fmt.Printf("  failed to send alert: %v\n", alertErr)
				}
			}

			return nil
		}

		fmt.Println("  ✅ OK: Ledger is intact")
		return nil
	},
}

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Count votes per candidate",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		results := elec.Tally()
		if len(results) == 0 {
			fmt.Println("No candidates registered")
			return nil
		}

		for _, r := range results {
			fmt.Printf("  %-12s %-20s %d\n", r.CandidateID, r.Name, r.Votes)
		}

		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display election status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		name, err := store.GetMetadata("election_name")
		if err != nil {
			name = cfg.Election.Name
		}

		chain := elec.Ledger()
		voters := elec.Voters()
		voted := 0
		for _, v := range voters {
			if v.HasVoted {
				voted++
			}
		}

		fmt.Printf("Election: %s\n", name)
		fmt.Printf("Blocks: %d\n", chain.Len())
		fmt.Printf("Latest hash: %s\n", chain.Latest().Hash)
		fmt.Printf("Candidates: %d\n", len(elec.Candidates()))
		fmt.Printf("Voters: %d (%d voted)\n", len(voters), voted)

		return nil
	},
}

func dbPath(cfg *config.Config) string {
	return filepath.Join(cfg.Node.DataDir, "ballotz.db")
}

// openLedger loads the stored chain as-is, without replaying it, so
// verify and show work on a tampered chain too.
func openLedger() (*config.Config, *storage.Storage, *ledger.Ledger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.New(dbPath(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	algorithm, err := store.GetMetadata("hash_algorithm")
	if err != nil {
		algorithm = cfg.Hash.Algorithm
	}

	hasher, err := hash.New(algorithm)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	blocks, err := store.LoadChain()
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("failed to load chain: %w", err)
	}
	if len(blocks) == 0 {
		store.Close()
		return nil, nil, nil, fmt.Errorf("ledger not initialized, run 'ballotz init' first")
	}

	var opts []ledger.Option
	if cfg.Ledger.AllowEmptyBlocks {
		opts = append(opts, ledger.WithAllowEmptyBlocks())
	}

	chain, err := ledger.Load(hasher, blocks, opts...)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	return cfg, store, chain, nil
}

// openElection loads the chain and replays it to rebuild the voter
// and candidate registries.
func openElection() (*config.Config, *storage.Storage, *election.Election, error) {
	cfg, store, chain, err := openLedger()
	if err != nil {
		return nil, nil, nil, err
	}

	elec, err := election.Rebuild(chain)
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("failed to rebuild election state: %w", err)
	}

	return cfg, store, elec, nil
}

func printBlock(block *ledger.Block) {
	fmt.Printf("\nBlock #%d\n", block.Index)
	fmt.Printf("  Timestamp : %s\n", time.Unix(block.Timestamp, 0).Format("2006-01-02 15:04:05"))
	fmt.Printf("  Prev Hash : %s\n", block.PrevHash)
	fmt.Printf("  Tx Root   : %s\n", block.TxRoot)
	fmt.Printf("  Hash      : %s\n", block.Hash)
	if len(block.Transactions) == 0 {
		fmt.Println("  Transactions: (none)")
		return
	}
	fmt.Println("  Transactions:")
	for _, tx := range block.Transactions {
		when := time.Unix(tx.Timestamp, 0).Format("2006-01-02 15:04:05")
		switch tx.Type {
		case ledger.TxAddVoter:
			fmt.Printf("    - %s @ %s -> voter %s (%s)\n", tx.Type, when, tx.VoterID, tx.Name)
		case ledger.TxAddCandidate:
			fmt.Printf("    - %s @ %s -> candidate %s (%s)\n", tx.Type, when, tx.CandidateID, tx.Name)
		case ledger.TxCastVote:
			fmt.Printf("    - %s @ %s -> %s voted for %s\n", tx.Type, when, tx.VoterID, tx.CandidateID)
		default:
			fmt.Printf("    - %s @ %s\n", tx.Type, when)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
