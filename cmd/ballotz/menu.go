package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"github.com/ballotz/ballotz/internal/election"
	"github.com/ballotz/ballotz/internal/ledger"
)

const (
	menuAddCandidate = "Add Candidate"
	menuAddVoter     = "Add Voter"
	menuCastVote     = "Cast Vote"
	menuShowChain    = "Print Blockchain"
	menuValidate     = "Validate Chain"
	menuTally        = "Tally Votes"
	menuExit         = "Exit"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run an interactive menu-driven voting session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, elec, err := openElection()
		if err != nil {
			return err
		}
		defer store.Close()

		title, err := pterm.DefaultBigText.WithLetters(
			putils.LettersFromStringWithStyle("B", pterm.FgRed.ToStyle()),
			putils.LettersFromStringWithStyle("allotz", pterm.FgDarkGray.ToStyle()),
		).Srender()
		if err == nil {
			pterm.Print(title)
		}
		pterm.Info.Printfln("Election: %s", cfg.Election.Name)

		options := []string{
			menuAddCandidate,
			menuAddVoter,
			menuCastVote,
			menuShowChain,
			menuValidate,
			menuTally,
			menuExit,
		}

		for {
			pterm.Println()
			choice, err := pterm.DefaultInteractiveSelect.
				WithOptions(options).
				WithDefaultText("Select an action").
				Show()
			if err != nil {
				return err
			}

			switch choice {
			case menuAddCandidate:
				menuRegisterCandidate(store, elec)
			case menuAddVoter:
				menuRegisterVoter(store, elec)
			case menuCastVote:
				menuCast(store, elec)
			case menuShowChain:
				renderChain(elec.Ledger())
			case menuValidate:
				if err := elec.Ledger().Validate(); err != nil {
					pterm.Error.Printfln("%v", err)
				} else {
					pterm.Success.Println("Blockchain is valid")
				}
			case menuTally:
				renderTally(elec)
			case menuExit:
				pterm.Info.Println("Goodbye!")
				return nil
			}
		}
	},
}

func menuRegisterCandidate(store blockSaver, elec *election.Election) {
	id, _ := pterm.DefaultInteractiveTextInput.Show("Candidate ID")
	name, _ := pterm.DefaultInteractiveTextInput.Show("Candidate Name")

	block, err := elec.RegisterCandidate(id, name)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return
	}
	if err := store.SaveBlock(block); err != nil {
		pterm.Error.Printfln("failed to save block: %v", err)
		return
	}
	pterm.Success.Printfln("Candidate '%s' (%s) added in block %d", name, id, block.Index)
}

func menuRegisterVoter(store blockSaver, elec *election.Election) {
	id, _ := pterm.DefaultInteractiveTextInput.Show("Voter ID")
	name, _ := pterm.DefaultInteractiveTextInput.Show("Voter Name")

	block, err := elec.RegisterVoter(id, name)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return
	}
	if err := store.SaveBlock(block); err != nil {
		pterm.Error.Printfln("failed to save block: %v", err)
		return
	}
	pterm.Success.Printfln("Voter '%s' (%s) added in block %d", name, id, block.Index)
}

func menuCast(store blockSaver, elec *election.Election) {
	voterID, _ := pterm.DefaultInteractiveTextInput.Show("Voter ID")
	candidateID, _ := pterm.DefaultInteractiveTextInput.Show("Candidate ID")

	block, err := elec.CastVote(voterID, candidateID)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return
	}
	if err := store.SaveBlock(block); err != nil {
		pterm.Error.Printfln("failed to save block: %v", err)
		return
	}
	pterm.Success.Printfln("Vote cast: %s -> %s (block %d)", voterID, candidateID, block.Index)
}

type blockSaver interface {
	SaveBlock(block *ledger.Block) error
}

func renderChain(chain *ledger.Ledger) {
	data := pterm.TableData{
		{"Index", "Time", "Transactions", "Prev Hash", "Hash"},
	}

	for _, block := range chain.Blocks() {
		data = append(data, []string{
			strconv.FormatUint(block.Index, 10),
			time.Unix(block.Timestamp, 0).Format("15:04:05"),
			summarizeTxs(block.Transactions),
			shortHash(block.PrevHash),
			shortHash(block.Hash),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Printfln("failed to render chain: %v", err)
	}
}

func renderTally(elec *election.Election) {
	results := elec.Tally()
	if len(results) == 0 {
		pterm.Warning.Println("No candidates registered")
		return
	}

	data := pterm.TableData{{"Candidate", "Name", "Votes"}}
	for _, r := range results {
		data = append(data, []string{r.CandidateID, r.Name, strconv.Itoa(r.Votes)})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Printfln("failed to render tally: %v", err)
	}
}

func summarizeTxs(txs []ledger.Transaction) string {
	if len(txs) == 0 {
		return "(genesis)"
	}

	summary := ""
	for i, tx := range txs {
		if i > 0 {
			summary += ", "
		}
		switch tx.Type {
		case ledger.TxAddVoter:
			summary += fmt.Sprintf("voter %s", tx.VoterID)
		case ledger.TxAddCandidate:
			summary += fmt.Sprintf("candidate %s", tx.CandidateID)
		case ledger.TxCastVote:
			summary += fmt.Sprintf("%s voted %s", tx.VoterID, tx.CandidateID)
		default:
			summary += string(tx.Type)
		}
	}
	return summary
}

func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12] + "..."
}
