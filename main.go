package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/auth"
	"github.com/junaidrashid-git/marketplace-client/cart"
	"github.com/junaidrashid-git/marketplace-client/checkout"
	"github.com/junaidrashid-git/marketplace-client/config"
	"github.com/junaidrashid-git/marketplace-client/earnings"
	"github.com/junaidrashid-git/marketplace-client/models"
	"github.com/junaidrashid-git/marketplace-client/money"
	"github.com/junaidrashid-git/marketplace-client/workflow"
)

func main() {
	log.Println("✅ Starting marketplace client...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	store := initCartStore(cfg)
	client := api.NewHTTP(cfg.APIBaseURL, cfg.APIToken)
	orchestrator := checkout.New(client, store)

	ctx := context.Background()

	if cfg.APIToken != "" && cfg.JWTSecret != "" {
		session, err := auth.Parse(cfg.APIToken, cfg.JWTSecret)
		if err != nil {
			log.Fatalf("❌ Session parse failed: %v", err)
		}
		log.Printf("👤 Signed in as user %d (%s)", session.UserID, session.Role)

		if session.CanSell() {
			orders, err := client.SellerOrders(ctx)
			if err != nil {
				log.Fatalf("❌ Failed to fetch seller orders: %v", err)
			}
			summary := earnings.Calculate(orders, session.UserID, time.Now())
			log.Printf("💰 Earned %s₮ total (%s₮ this month, %d delivered orders)",
				money.FormatPrice(summary.TotalEarned),
				money.FormatPrice(summary.ThisMonthEarned),
				summary.DeliveredOrderCount)
		}

		if session.CanModerate() {
			moderation := workflow.NewModeration(client, session.Role)
			pending, err := moderation.Pending(ctx)
			if err != nil {
				log.Fatalf("❌ Failed to fetch pending products: %v", err)
			}
			log.Printf("🛡️ %d products awaiting moderation", len(pending))
		}
	}

	products, err := client.Products(ctx, api.ProductFilter{Status: models.ProductStatusApproved})
	if err != nil {
		log.Fatalf("❌ Failed to fetch products: %v", err)
	}
	log.Printf("🛍️ %d products listed", len(products))

	for _, item := range store.Items() {
		log.Printf("🛒 %s x%d = %s₮", item.Name, item.Quantity, money.FormatPrice(item.Subtotal()))
	}
	log.Printf("🛒 Cart total: %s₮ (%d items)", money.FormatPrice(store.Total()), store.Len())

	if orchestrator.Purchasing() {
		log.Println("⏳ A purchase is already in flight")
	}
}

// initCartStore picks the persistence backend for the local cart.
func initCartStore(cfg config.Config) *cart.Store {
	var p cart.Persistence
	if cfg.RedisAddr != "" {
		p = cart.NewRedis(cfg.RedisAddr, cfg.ProfileKey)
	} else {
		g, err := cart.Open(cfg.CartDatabaseURL, cfg.CartSQLitePath)
		if err != nil {
			log.Fatalf("❌ Cart DB connection failed: %v", err)
		}
		p = g
	}

	store, err := cart.NewStore(p)
	if err != nil {
		log.Fatalf("❌ Failed to load cart: %v", err)
	}
	return store
}
