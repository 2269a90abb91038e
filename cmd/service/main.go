package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/framerpay/checkout-backend/api"
	"github.com/framerpay/checkout-backend/stripe"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// load a local .env when present, real env vars take precedence
	_ = godotenv.Load()
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.StringP("stripe-key", "k", "", "Stripe secret key (sk_test_... or sk_live_...)")
	flag.String("success-url", "https://your-site.com/success", "default checkout success redirect")
	flag.String("cancel-url", "https://your-site.com/cancel", "default checkout cancel redirect")
	flag.String("return-url", "https://your-site.com/thank-you", "default one-time payment return redirect")
	flag.Bool("disable-link", false, "offer card only, disabling Link and wallet payment methods")
	flag.String("cors-origin", "*", "allowed CORS origin")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("FRAMERPAY")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	log.Init(viper.GetString("log-level"), "stdout", nil)
	// the secret key is validated once here, not on every request
	stripeConfig := &stripe.Config{
		APIKey:      viper.GetString("stripe-key"),
		SuccessURL:  viper.GetString("success-url"),
		CancelURL:   viper.GetString("cancel-url"),
		ReturnURL:   viper.GetString("return-url"),
		DisableLink: viper.GetBool("disable-link"),
	}
	if err := stripeConfig.Validate(); err != nil {
		log.Fatalf("invalid stripe configuration: %v", err)
	}
	log.Infow("stripe configured", "keyPrefix", stripeConfig.KeyPrefix(), "live", stripeConfig.LiveMode(),
		"linkDisabled", stripeConfig.DisableLink)
	// create the local API server
	api.New(&api.Config{
		Host:       host,
		Port:       port,
		CORSOrigin: viper.GetString("cors-origin"),
		Stripe:     stripe.NewService(stripeConfig),
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
