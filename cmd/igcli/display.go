package main

import (
	"fmt"

	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/stream"
)

// version is the shell's own version string, not a client-library version -
// there's no server handshake to report here the way fixclient's
// utils.FullVersion() reported the FIX engine's build.
const version = "igcli 0.1.0"

func displayHelp() {
	fmt.Print(`Commands:
  --- Session ---
  login                                  - Authenticate and start a session

  --- Account ---
  accounts                               - List visible accounts
  positions                              - List open positions
  orders                                 - List working orders
  activity <from> <to>                   - Show activity history (ISO-8601 dates)

  --- Dealing ---
  buy|sell <epic> <qty> [price]          - Submit an order (market if no price)
  close <dealId> <buy|sell> <qty>        - Close a position at market
  confirm <dealReference>                - Check an order's outcome

  --- Markets ---
  markets <searchTerm>                   - Search markets by name
  market <epic>                          - Show full market details
  nav [nodeId]                           - Browse the market navigation tree

  --- Streaming ---
  subscribe <market|account|trade|chart> [item]  - Open a push subscription
  unsubscribe <subscriptionId>           - Cancel a push subscription
  status                                 - Show session and stream status

  --- General ---
  help, version, exit

Examples:
  login
  buy CS.D.EURUSD.CFD.IP 1
  sell CS.D.EURUSD.CFD.IP 0.5 1.0950
  subscribe market CS.D.EURUSD.CFD.IP
  market CS.D.EURUSD.CFD.IP
`)
}

func displayAccounts(accounts []model.Account) {
	if len(accounts) == 0 {
		fmt.Println("No accounts")
		return
	}
	fmt.Print(`
Accounts:
┌──────────────┬────────────────────┬─────────────┬──────────────┬───────────┐
│ Account ID   │ Name               │ Type        │ Balance      │ Preferred │
├──────────────┼────────────────────┼─────────────┼──────────────┼───────────┤
`)
	for _, a := range accounts {
		preferred := ""
		if a.Preferred {
			preferred = "yes"
		}
		fmt.Printf("│ %-12s │ %-18s │ %-11s │ %-12.2f │ %-9s │\n",
			a.AccountID, a.AccountName, a.AccountType, a.Balance.Balance.Value, preferred)
	}
	fmt.Println("└──────────────┴────────────────────┴─────────────┴──────────────┴───────────┘")
}

func displayPositions(positions []model.Position) {
	if len(positions) == 0 {
		fmt.Println("No open positions")
		return
	}
	fmt.Print(`
Positions:
┌──────────────────────┬─────────────────┬──────┬──────────┬──────────┐
│ Deal ID               │ Epic            │ Side │ Size     │ Level    │
├──────────────────────┼─────────────────┼──────┼──────────┼──────────┤
`)
	for _, p := range positions {
		fmt.Printf("│ %-21s │ %-15s │ %-4s │ %-8.2f │ %-8.2f │\n",
			truncate(p.Position.DealID, 21), truncate(p.Position.Epic, 15), p.Position.Direction, p.Position.Size, p.Position.Level)
	}
	fmt.Println("└──────────────────────┴─────────────────┴──────┴──────────┴──────────┘")
}

func displayWorkingOrders(orders []model.WorkingOrder) {
	if len(orders) == 0 {
		fmt.Println("No working orders")
		return
	}
	fmt.Print(`
Working Orders:
┌──────────────────────┬─────────────────┬──────┬──────────┬──────────┐
│ Deal ID               │ Epic            │ Side │ Size     │ Level    │
├──────────────────────┼─────────────────┼──────┼──────────┼──────────┤
`)
	for _, o := range orders {
		fmt.Printf("│ %-21s │ %-15s │ %-4s │ %-8.2f │ %-8.2f │\n",
			truncate(o.WorkingOrderData.DealID, 21), truncate(o.WorkingOrderData.Epic, 15),
			o.WorkingOrderData.Direction, o.WorkingOrderData.Size, o.WorkingOrderData.Level)
	}
	fmt.Println("└──────────────────────┴─────────────────┴──────┴──────────┴──────────┘")
}

func displayConfirmation(c model.OrderConfirmation) {
	fmt.Printf("\nConfirmation for %s:\n", c.DealReference)
	fmt.Printf("  Status: %s\n", c.Status)
	if c.DealID != nil {
		fmt.Printf("  Deal ID: %s\n", *c.DealID)
	}
	if c.Reason != nil {
		fmt.Printf("  Reason: %s\n", *c.Reason)
	}
	if c.Level.Valid {
		fmt.Printf("  Level: %.5f\n", c.Level.Value)
	}
}

func displayMarketSearch(markets []model.MarketData) {
	if len(markets) == 0 {
		fmt.Println("No markets found")
		return
	}
	fmt.Print(`
Markets:
┌─────────────────────┬──────────────────────────┬─────────────┬──────────┬──────────┐
│ Epic                │ Name                     │ Status      │ Bid      │ Offer    │
├─────────────────────┼──────────────────────────┼─────────────┼──────────┼──────────┤
`)
	for _, m := range markets {
		fmt.Printf("│ %-19s │ %-24s │ %-11s │ %-8.2f │ %-8.2f │\n",
			truncate(m.Epic, 19), truncate(m.InstrumentName, 24), m.MarketStatus, m.Bid.Value, m.Offer.Value)
	}
	fmt.Println("└─────────────────────┴──────────────────────────┴─────────────┴──────────┴──────────┘")
}

func displayMarketDetails(d model.MarketDetails) {
	fmt.Printf("\n%s (%s)\n", d.Instrument.Name, d.Instrument.Epic)
	fmt.Printf("  Status: %s\n", d.Snapshot.MarketStatus)
	fmt.Printf("  Bid/Offer: %.5f / %.5f\n", d.Snapshot.Bid.Value, d.Snapshot.Offer.Value)
	fmt.Printf("  Min deal size: %.2f %s\n", d.DealingRules.MinDealSize.Value.Value, unitOf(d.DealingRules.MinDealSize.Unit))
	fmt.Printf("  Min step distance: %.2f %s\n", d.DealingRules.MinStepDistance.Value.Value, unitOf(d.DealingRules.MinStepDistance.Unit))
}

func unitOf(u *model.StepUnit) string {
	if u == nil {
		return ""
	}
	return string(*u)
}

func displayNavigationNode(n model.MarketNavigationResponse) {
	if len(n.Nodes) > 0 {
		fmt.Println("\nChild nodes:")
		for _, ref := range n.Nodes {
			fmt.Printf("  %s  (%s)\n", ref.Name, ref.ID)
		}
	}
	if len(n.Markets) > 0 {
		displayMarketSearch(n.Markets)
	}
	if len(n.Nodes) == 0 && len(n.Markets) == 0 {
		fmt.Println("Empty node")
	}
}

func displayActivity(h model.ActivityHistory) {
	if len(h.Activities) == 0 {
		fmt.Println("No activity in range")
		return
	}
	fmt.Print(`
Activity:
┌─────────────────────┬─────────────────┬────────────────┬─────────────┐
│ Date                │ Epic            │ Type           │ Status      │
├─────────────────────┼─────────────────┼────────────────┼─────────────┤
`)
	for _, a := range h.Activities {
		epic := ""
		if a.Epic != nil {
			epic = *a.Epic
		}
		status := ""
		if a.Status != nil {
			status = *a.Status
		}
		fmt.Printf("│ %-19s │ %-15s │ %-14s │ %-11s │\n", truncate(a.Date, 19), truncate(epic, 15), a.Type, status)
	}
	fmt.Println("└─────────────────────┴─────────────────┴────────────────┴─────────────┘")
}

func displaySubscriptions(subs []stream.Subscription) {
	fmt.Print(`
Active Subscriptions:
┌──────────────────────────────────────┬─────────────┬─────────────────┐
│ ID                                    │ Class       │ Item            │
├──────────────────────────────────────┼─────────────┼─────────────────┤
`)
	for _, s := range subs {
		fmt.Printf("│ %-38s │ %-11s │ %-15s │\n", truncate(s.ID, 38), s.Class, truncate(s.Item, 15))
	}
	fmt.Println("└──────────────────────────────────────┴─────────────┴─────────────────┘")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
