package api

const (
	// checkout routes

	// POST /checkout to resolve a price and start a payment or subscription
	checkoutEndpoint = "/checkout"
	// POST /create-intent to create a one-time payment intent directly
	createIntentEndpoint = "/create-intent"
	// POST /create-subscription to create a subscription checkout session
	createSubscriptionEndpoint = "/create-subscription"

	// catalog routes

	// GET|POST /product to resolve a product and price into a display payload
	productEndpoint = "/product"

	// diagnostics routes

	// ANY /echo to reflect the raw request back to the caller
	echoEndpoint = "/echo"
)
