package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Metadata key linking a Stripe Customer to our user ID.
const metadataUserIDKey = "user_id"

// Client defines the Stripe interactions the checkout flow needs.
type Client interface {
	// GetOrCreateCustomer finds the customer tagged with userID, creating
	// one when none exists. Returns the Stripe customer ID.
	GetOrCreateCustomer(ctx context.Context, userID, email string) (string, error)

	// CreateCheckoutSession starts a subscription checkout for the price
	// and returns the hosted checkout URL.
	CreateCheckoutSession(ctx context.Context, stripeCustomerID, priceID, successURL, cancelURL string) (string, error)
}

type stripeClient struct {
	client *client.API
	log    *logger.Logger
}

// NewStripeClient creates a new Stripe client.
func NewStripeClient(apiKey string, log *logger.Logger) Client {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &stripeClient{
		client: sc,
		log:    log,
	}
}

// GetOrCreateCustomer searches customers by user_id metadata, creating a
// new customer if the search comes up empty.
func (sc *stripeClient) GetOrCreateCustomer(ctx context.Context, userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("stripe: userID is required")
	}

	searchParams := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf(`metadata["%s"]:"%s"`, metadataUserIDKey, userID),
			Context: ctx,
		},
	}
	iter := sc.client.Customers.Search(searchParams)
	if iter.Next() {
		existing := iter.Customer()
		sc.log.Debugw("Found existing Stripe customer", "userID", userID, "customerID", existing.ID)
		return existing.ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("stripe: customer search: %w", err)
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			metadataUserIDKey: userID,
		},
	}
	params.Context = ctx

	created, err := sc.client.Customers.New(params)
	if err != nil {
		sc.log.Errorw("Failed to create Stripe customer", "error", err, "userID", userID)
		return "", fmt.Errorf("stripe: create customer: %w", err)
	}

	sc.log.Infow("Created Stripe customer", "userID", userID, "customerID", created.ID)
	return created.ID, nil
}

// CreateCheckoutSession starts a subscription-mode checkout session.
func (sc *stripeClient) CreateCheckoutSession(ctx context.Context, stripeCustomerID, priceID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(stripeCustomerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	session, err := sc.client.CheckoutSessions.New(params)
	if err != nil {
		sc.log.Errorw("Failed to create checkout session", "error", err, "customerID", stripeCustomerID, "priceID", priceID)
		return "", fmt.Errorf("stripe: create checkout session: %w", err)
	}

	sc.log.Infow("Created checkout session", "customerID", stripeCustomerID, "sessionID", session.ID)
	return session.URL, nil
}
