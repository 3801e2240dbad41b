package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aaryan182/probo/internal/engine"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
)

func parseQty(s string) (money.Quantity, error) {
	var q int64
	if _, err := fmt.Sscanf(s, "%d", &q); err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return money.Quantity(q), nil
}

func newCreateUserCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "create-user <user>",
		Short: "Ensure a user's zero balances exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				return ex.EnsureUser(args[0])
			})
		},
	}
}

func newCreateSymbolCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "create-symbol <symbol>",
		Short: "Create an empty book for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				return ex.CreateSymbol(args[0])
			})
		},
	}
}

func newOnrampCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "onramp <user> <amount>",
		Short: "Credit a user's free cash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			return withEventLogging(ex, func() error {
				return ex.Onramp(args[0], amount)
			})
		},
	}
}

func newBuyCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <user> <symbol> <qty> <price> <yes|no>",
		Short: "Place a taker buy",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}
			min, max := ex.PriceBounds()
			price, err := money.ParsePrice(args[3], min, max)
			if err != nil {
				return err
			}
			outcome, err := ledger.ParseOutcome(args[4])
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				res, err := ex.Buy(args[0], args[1], outcome, price, qty)
				if err != nil {
					return err
				}
				fmt.Printf("status=%s filled=%d resting=%d\n", res.Status, res.Filled, res.Resting)
				return nil
			})
		},
	}
}

func newSellCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <user> <symbol> <qty> <price> <yes|no>",
		Short: "Place a resting sell",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}
			min, max := ex.PriceBounds()
			price, err := money.ParsePrice(args[3], min, max)
			if err != nil {
				return err
			}
			outcome, err := ledger.ParseOutcome(args[4])
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				res, err := ex.Sell(args[0], args[1], outcome, price, qty)
				if err != nil {
					return err
				}
				fmt.Printf("status=%s filled=%d resting=%d\n", res.Status, res.Filled, res.Resting)
				return nil
			})
		},
	}
}

func newCancelCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <user> <symbol> <qty> <price> <yes|no>",
		Short: "Cancel up to qty of a resting order",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}
			min, max := ex.PriceBounds()
			price, err := money.ParsePrice(args[3], min, max)
			if err != nil {
				return err
			}
			outcome, err := ledger.ParseOutcome(args[4])
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				res, err := ex.Cancel(args[0], args[1], outcome, price, qty)
				if err != nil {
					fmt.Printf("canceled=%d (warning: %v)\n", res.Canceled, err)
					return nil
				}
				fmt.Printf("canceled=%d\n", res.Canceled)
				return nil
			})
		},
	}
}

func newMintCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "mint <user> <symbol> <qty> <price>",
		Short: "Mint a matched YES/NO pair from cash",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}
			min, max := ex.PriceBounds()
			price, err := money.ParsePrice(args[3], min, max)
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				res, err := ex.Mint(args[0], args[1], qty, price)
				if err != nil {
					return err
				}
				fmt.Printf("minted=%d spent=%s\n", res.Quantity, res.CashSpent.String())
				return nil
			})
		},
	}
}

func newBookCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "book [symbol]",
		Short: "View one symbol's order book, or every symbol's if none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				snap, err := ex.ViewBook(args[0])
				if err != nil {
					return err
				}
				printBook(snap)
				return nil
			}
			for _, snap := range ex.ViewAllBooks() {
				printBook(snap)
			}
			return nil
		},
	}
}

func printBook(snap engine.BookSnapshot) {
	fmt.Printf("symbol=%s\n", snap.Symbol)
	fmt.Println("yes bids:")
	for _, lvl := range snap.YesBids {
		fmt.Printf("  %s total=%d\n", lvl.Price.String(), lvl.Total)
	}
	fmt.Println("yes asks:")
	for _, lvl := range snap.YesAsks {
		fmt.Printf("  %s total=%d\n", lvl.Price.String(), lvl.Total)
	}
	fmt.Println("no bids:")
	for _, lvl := range snap.NoBids {
		fmt.Printf("  %s total=%d\n", lvl.Price.String(), lvl.Total)
	}
	fmt.Println("no asks:")
	for _, lvl := range snap.NoAsks {
		fmt.Printf("  %s total=%d\n", lvl.Price.String(), lvl.Total)
	}
}

func newCashCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "cash [user]",
		Short: "Show one user's or every user's cash balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				free, locked, err := ex.GetCash(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s free=%s locked=%s\n", args[0], free.String(), locked.String())
				return nil
			}
			for u, bal := range ex.GetAllCash() {
				fmt.Printf("%s free=%s locked=%s\n", u, bal.Free.String(), bal.Locked.String())
			}
			return nil
		},
	}
}

func newInventoryCmd(seed *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory [user] [symbol]",
		Short: "Show one user's or every user's token positions",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(*seed)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				pos, ok := ex.GetInventory(args[0], args[1])
				if !ok {
					return fmt.Errorf("no position for %s/%s", args[0], args[1])
				}
				printPosition(args[0], args[1], pos)
				return nil
			}
			if len(args) == 1 {
				bySymbol, ok := ex.GetUserInventory(args[0])
				if !ok {
					return fmt.Errorf("user %q not found", args[0])
				}
				for sym, pos := range bySymbol {
					printPosition(args[0], sym, pos)
				}
				return nil
			}
			for u, bySymbol := range ex.GetAllInventory() {
				for sym, pos := range bySymbol {
					printPosition(u, sym, pos)
				}
			}
			return nil
		},
	}
}

func printPosition(user, symbol string, pos ledger.Position) {
	fmt.Printf("%s/%s yes(free=%d,locked=%d) no(free=%d,locked=%d)\n",
		user, symbol, pos.Yes.Free, pos.Yes.Locked, pos.No.Free, pos.No.Locked)
}

// newDemoCmd runs the literal scenario sequence from spec.md §8 in one
// process and prints each step's outcome — useful since a one-shot CLI
// otherwise has nowhere to persist state between invocations.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the seeded scenario walkthrough end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := newExchange(true)
			if err != nil {
				return err
			}
			return withEventLogging(ex, func() error {
				return runDemo(ex)
			})
		},
	}
}

func runDemo(ex *engine.Exchange) error {
	const symbol = "BTC_USDT_10_Oct_2024_9_30"

	res, err := ex.Buy("user3", symbol, ledger.YES, decimal.RequireFromString("9.5"), 100)
	if err != nil {
		return err
	}
	fmt.Printf("1. simple crossing buy: %s filled=%d resting=%d\n", res.Status, res.Filled, res.Resting)

	mint, err := ex.Mint("user1", symbol, 10, decimal.NewFromInt(5))
	if err != nil {
		return err
	}
	fmt.Printf("3. mint: spent=%s\n", mint.CashSpent.String())

	cancel, err := ex.Cancel("user1", symbol, ledger.YES, decimal.RequireFromString("9.5"), 200)
	if err != nil {
		fmt.Printf("4. cancel: canceled=%d (warning: %v)\n", cancel.Canceled, err)
	} else {
		fmt.Printf("4. cancel: canceled=%d\n", cancel.Canceled)
	}

	_, err = ex.Buy("user1", symbol, ledger.YES, decimal.NewFromInt(10), 100000)
	fmt.Printf("5. insufficient cash: err=%v\n", err)

	if err := ex.CreateSymbol("X"); err != nil {
		return err
	}
	if err := ex.Onramp("user1", decimal.NewFromInt(100000)); err != nil {
		return err
	}
	if err := ex.Onramp("user2", decimal.NewFromInt(100000)); err != nil {
		return err
	}
	if _, err := ex.Buy("user1", "X", ledger.YES, decimal.NewFromInt(6), 50); err != nil {
		return err
	}
	res6, err := ex.Buy("user2", "X", ledger.NO, decimal.NewFromInt(5), 50)
	if err != nil {
		return err
	}
	fmt.Printf("6. crossing by book-sweep: %s filled=%d resting=%d\n", res6.Status, res6.Filled, res6.Resting)
	return nil
}
