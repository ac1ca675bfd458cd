package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"bitbucket.org/crgw/rates-inquiry/internal/config"
	"bitbucket.org/crgw/rates-inquiry/internal/form"
	"bitbucket.org/crgw/rates-inquiry/internal/form/terminal"
	"bitbucket.org/crgw/rates-inquiry/internal/quote"
	"bitbucket.org/crgw/rates-inquiry/internal/tools/logging"
)

func run(args []string, out io.Writer) int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}

	flags := flag.NewFlagSet("quote", flag.ContinueOnError)
	flags.SetOutput(out)

	var (
		unitName  = flags.String("unit", "", "unit name")
		arrival   = flags.String("arrival", "", "arrival date, YYYY-MM-DD")
		departure = flags.String("departure", "", "departure date, YYYY-MM-DD")
		ages      = flags.String("ages", "", "comma separated guest ages, e.g. 25,30,8")
		occupants = flags.Int("occupants", 0, "number of guests; defaults to the number of ages")
		proxyURL  = flags.String("proxy", cfg.Client.ProxyURL, "rates endpoint of the proxy")
	)

	if err := flags.Parse(args); err != nil {
		return 2
	}

	money, err := quote.NewMoneyFormatter(cfg.Display.Currency)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}

	log := logging.NewWithWriter(cfg.Log.Level, os.Stderr)
	renderer := terminal.New(out)
	notices := form.NewNotices(renderer)
	defer notices.Stop()

	controller := form.NewController(form.Options{
		Client:     form.NewRatesClient(*proxyURL, cfg.Client.Timeout, log),
		Renderer:   renderer,
		Notices:    notices,
		Normalizer: quote.NewNormalizer(money),
		Log:        log,
	})

	controller.SetUnitName(*unitName)
	controller.SetArrival(*arrival)
	controller.SetDeparture(*departure)

	ageValues := splitAges(*ages)
	if *occupants > 0 {
		controller.SetOccupants(*occupants)
	} else if len(ageValues) > 0 {
		controller.SetOccupants(len(ageValues))
	}
	controller.SetAges(ageValues)

	controller.Ages().Subscribe(renderer.Observe)

	if _, err := controller.Submit(context.Background()); err != nil {
		if errors.Is(err, form.ErrClientValidation) {
			return 2
		}
		return 1
	}

	return 0
}

func splitAges(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	ages := strings.Split(value, ",")
	for i := range ages {
		ages[i] = strings.TrimSpace(ages[i])
	}

	return ages
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
