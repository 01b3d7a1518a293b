// pricer values a single European call/put pair from env (PRICER_* variables),
// for sanity-checking the model against reference numbers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"trading_sim/internal/modules/engine/service"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("PRICER")
	v.AutomaticEnv()
	v.SetDefault("spot", 100.0)
	v.SetDefault("strike", 100.0)
	v.SetDefault("maturity", 1.0)
	v.SetDefault("rate", 0.05)
	v.SetDefault("volatility", 0.2)

	var (
		s     = v.GetFloat64("spot")
		k     = v.GetFloat64("strike")
		t     = v.GetFloat64("maturity")
		r     = v.GetFloat64("rate")
		sigma = v.GetFloat64("volatility")
	)

	call, err := service.CallPrice(s, k, t, r, sigma)
	if err != nil {
		fmt.Fprintf(os.Stderr, "call: %v\n", err)
		os.Exit(1)
	}
	put, err := service.PutPrice(s, k, t, r, sigma)
	if err != nil {
		fmt.Fprintf(os.Stderr, "put: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("S=%.4f K=%.4f T=%.4f r=%.4f sigma=%.4f\n", s, k, t, r, sigma)
	fmt.Printf("call: %.4f\n", call)
	fmt.Printf("put:  %.4f\n", put)
}
