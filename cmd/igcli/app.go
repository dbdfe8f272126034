package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gurre/ig-client-go/config"
	"github.com/gurre/ig-client-go/model"
	"github.com/gurre/ig-client-go/ratelimit"
	"github.com/gurre/ig-client-go/services"
	"github.com/gurre/ig-client-go/session"
	"github.com/gurre/ig-client-go/stream"
)

// app holds the shell's connected-session state: the authenticator used to
// obtain/refresh it, the REST facade bound to the same config, and a stream
// client constructed lazily on first "subscribe". Mirrors FixApp's
// single-struct-owns-the-connection shape from fixclient/fixapp.go, minus
// the quickfix session handle this library doesn't have.
type app struct {
	cfg  *config.Config
	auth *session.Authenticator
	svc  *services.Client

	mu       sync.RWMutex
	sess     session.Session
	loggedIn bool

	stream *stream.Client
}

func newApp(cfg *config.Config) *app {
	ratelimit.SetSafetyMargin(cfg.RateLimitSafetyMargin)
	return &app{
		cfg:  cfg,
		auth: session.New(cfg),
		svc:  services.New(cfg),
	}
}

func (a *app) currentSession() (session.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sess, a.loggedIn
}

func (a *app) setSession(s session.Session) {
	a.mu.Lock()
	a.sess = s
	a.loggedIn = true
	a.mu.Unlock()
}

func (a *app) disconnectStream() {
	a.mu.RLock()
	s := a.stream
	a.mu.RUnlock()
	if s != nil {
		s.Disconnect()
	}
}

func (a *app) dispatch(parts []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := parts[0]
	switch cmd {
	case "login":
		a.handleLogin(ctx)
	case "accounts":
		a.handleAccounts(ctx)
	case "positions":
		a.handlePositions(ctx)
	case "orders":
		a.handleWorkingOrders(ctx)
	case "buy":
		a.handleOrder(ctx, model.Buy, parts)
	case "sell":
		a.handleOrder(ctx, model.Sell, parts)
	case "close":
		a.handleClose(ctx, parts)
	case "confirm":
		a.handleConfirm(ctx, parts)
	case "markets":
		a.handleSearchMarkets(ctx, parts)
	case "market":
		a.handleMarketDetails(ctx, parts)
	case "nav":
		a.handleNav(ctx, parts)
	case "activity":
		a.handleActivity(ctx, parts)
	case "subscribe":
		a.handleSubscribe(ctx, parts)
	case "unsubscribe":
		a.handleUnsubscribe(parts)
	case "status":
		a.handleStatus()
	case "help":
		displayHelp()
	case "version":
		fmt.Println(version)
	default:
		fmt.Println("Unknown command. Type 'help' for available commands.")
	}
}

func (a *app) handleLogin(ctx context.Context) {
	s, err := a.auth.Login(ctx)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	a.setSession(s)
	fmt.Printf("Logged in. Active account: %s\n", s.AccountID)
}

func (a *app) requireSession() (session.Session, bool) {
	s, ok := a.currentSession()
	if !ok {
		fmt.Println("Not logged in. Run 'login' first.")
	}
	return s, ok
}

func (a *app) handleAccounts(ctx context.Context) {
	s, ok := a.requireSession()
	if !ok {
		return
	}
	accounts, err := a.svc.Accounts(ctx, s)
	if err != nil {
		fmt.Printf("Error fetching accounts: %v\n", err)
		return
	}
	displayAccounts(accounts)
}

func (a *app) handlePositions(ctx context.Context) {
	s, ok := a.requireSession()
	if !ok {
		return
	}
	positions, err := a.svc.Positions(ctx, s)
	if err != nil {
		fmt.Printf("Error fetching positions: %v\n", err)
		return
	}
	displayPositions(positions)
}

func (a *app) handleWorkingOrders(ctx context.Context) {
	s, ok := a.requireSession()
	if !ok {
		return
	}
	orders, err := a.svc.WorkingOrders(ctx, s)
	if err != nil {
		fmt.Printf("Error fetching working orders: %v\n", err)
		return
	}
	displayWorkingOrders(orders)
}

// handleOrder processes "buy|sell <epic> <qty> [price]".
func (a *app) handleOrder(ctx context.Context, direction model.Direction, parts []string) {
	if len(parts) < 3 {
		fmt.Println("Usage: buy|sell <epic> <qty> [price]")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}

	epic := parts[1]
	qty, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		fmt.Printf("Invalid quantity: %v\n", err)
		return
	}

	var req model.CreateOrderRequest
	if len(parts) >= 4 {
		level, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			fmt.Printf("Invalid price: %v\n", err)
			return
		}
		req = model.NewLimitOrder(epic, direction, qty, level)
	} else {
		req = model.NewMarketOrder(epic, direction, qty)
	}

	resp, err := a.svc.CreateOrder(ctx, s, req)
	if err != nil {
		fmt.Printf("Order failed: %v\n", err)
		return
	}
	fmt.Printf("Order submitted. Deal reference: %s\n", resp.DealReference)
}

func (a *app) handleClose(ctx context.Context, parts []string) {
	if len(parts) < 4 {
		fmt.Println("Usage: close <dealId> <buy|sell> <qty>")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}

	var direction model.Direction
	switch parts[2] {
	case "buy":
		direction = model.Buy
	case "sell":
		direction = model.Sell
	default:
		fmt.Println("Direction must be 'buy' or 'sell' (the side that closes the position)")
		return
	}

	qty, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		fmt.Printf("Invalid quantity: %v\n", err)
		return
	}

	resp, err := a.svc.ClosePosition(ctx, s, model.MarketClose(parts[1], direction, qty))
	if err != nil {
		fmt.Printf("Close failed: %v\n", err)
		return
	}
	fmt.Printf("Close submitted. Deal reference: %s\n", resp.DealReference)
}

func (a *app) handleConfirm(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: confirm <dealReference>")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}
	conf, err := a.svc.Confirm(ctx, s, parts[1])
	if err != nil {
		fmt.Printf("Error fetching confirmation: %v\n", err)
		return
	}
	displayConfirmation(conf)
}

func (a *app) handleSearchMarkets(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: markets <searchTerm>")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}
	results, err := a.svc.SearchMarkets(ctx, s, parts[1])
	if err != nil {
		fmt.Printf("Error searching markets: %v\n", err)
		return
	}
	displayMarketSearch(results)
}

func (a *app) handleMarketDetails(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: market <epic>")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}
	details, err := a.svc.MarketDetails(ctx, s, parts[1])
	if err != nil {
		fmt.Printf("Error fetching market details: %v\n", err)
		return
	}
	displayMarketDetails(details)
}

func (a *app) handleNav(ctx context.Context, parts []string) {
	s, ok := a.requireSession()
	if !ok {
		return
	}
	nodeID := ""
	if len(parts) >= 2 {
		nodeID = parts[1]
	}
	node, err := a.svc.NavigationNode(ctx, s, nodeID)
	if err != nil {
		fmt.Printf("Error fetching navigation node: %v\n", err)
		return
	}
	displayNavigationNode(node)
}

func (a *app) handleActivity(ctx context.Context, parts []string) {
	if len(parts) < 3 {
		fmt.Println("Usage: activity <from> <to>  (ISO-8601 dates)")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}
	history, err := a.svc.Activity(ctx, s, parts[1], parts[2], false, 0)
	if err != nil {
		fmt.Printf("Error fetching activity: %v\n", err)
		return
	}
	displayActivity(history)
}

// handleSubscribe processes "subscribe <market|account|trade|chart> [item]".
func (a *app) handleSubscribe(ctx context.Context, parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: subscribe <market|account|trade|chart> [item]")
		return
	}
	s, ok := a.requireSession()
	if !ok {
		return
	}

	var class model.SubscriptionClass
	switch parts[1] {
	case "market":
		class = model.SubscriptionMarket
	case "account":
		class = model.SubscriptionAccount
	case "trade":
		class = model.SubscriptionTrade
	case "chart":
		class = model.SubscriptionChart
	default:
		fmt.Println("Unknown subscription class. Use market, account, trade or chart.")
		return
	}

	item := s.AccountID
	if len(parts) >= 3 {
		item = parts[2]
	}

	sc, err := a.ensureStream(ctx, s)
	if err != nil {
		fmt.Printf("Stream connect failed: %v\n", err)
		return
	}

	id, err := sc.Subscribe(class, item)
	if err != nil {
		fmt.Printf("Subscribe failed: %v\n", err)
		return
	}
	fmt.Printf("Subscribed: %s (id %s)\n", item, id)
}

func (a *app) ensureStream(ctx context.Context, s session.Session) (*stream.Client, error) {
	a.mu.Lock()
	sc := a.stream
	if sc == nil {
		sc = stream.New(a.cfg)
		a.stream = sc
	}
	a.mu.Unlock()

	if sc.State() == stream.Connected {
		return sc, nil
	}
	if err := sc.Connect(ctx, s); err != nil {
		return nil, err
	}
	return sc, nil
}

func (a *app) handleUnsubscribe(parts []string) {
	if len(parts) < 2 {
		fmt.Println("Usage: unsubscribe <subscriptionId>")
		return
	}
	a.mu.RLock()
	sc := a.stream
	a.mu.RUnlock()
	if sc == nil {
		fmt.Println("Not connected to the stream.")
		return
	}
	if err := sc.Unsubscribe(parts[1]); err != nil {
		fmt.Printf("Unsubscribe failed: %v\n", err)
		return
	}
	fmt.Println("Unsubscribed.")
}

func (a *app) handleStatus() {
	s, ok := a.currentSession()
	if !ok {
		fmt.Println("Session: (not logged in)")
		return
	}
	fmt.Printf("Session: account %s (logged in)\n", s.AccountID)

	for _, class := range []ratelimit.Class{
		ratelimit.NonTradingAccount,
		ratelimit.TradingAccount,
		ratelimit.NonTradingApp,
		ratelimit.HistoricalPrice,
	} {
		fmt.Println(ratelimit.Describe(ratelimit.Get(class).Stats()))
	}

	a.mu.RLock()
	sc := a.stream
	a.mu.RUnlock()
	if sc == nil {
		fmt.Println("Stream: (not connected)")
		return
	}

	fmt.Printf("Stream: %s\n", sc.State())
	subs := sc.Subscriptions()
	if len(subs) == 0 {
		logrus.Debug("igcli: no active subscriptions")
		fmt.Println("No active subscriptions")
		return
	}
	displaySubscriptions(subs)
}
