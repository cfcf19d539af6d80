/* main.go
 * The "main" method for running the survivor pool service. For details see `readme.md`
 * Usage: go run main.go -pool="<pool>" -db="<database>"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"survivor-pool/api/api"
	"survivor-pool/bot"
	"survivor-pool/web"
)

func main() {
	err := godotenv.Load()

	//Flags
	poolPtr := flag.String("pool", "survivor_2025", "Pool identifier, scopes every collection read and write")
	dbPtr := flag.String("db", "survivor", "MongoDB database name")
	addrPtr := flag.String("addr", ":8080", "Listen address for the HTTP server")
	ttlPtr := flag.Duration("ttl", api.DefaultCacheTTL, "How long a pool snapshot is served before recomputation")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}
	discordToken := os.Getenv("DISCORD_PROD_TOKEN")
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	}

	apiPtr, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_PROD_URI"), *poolPtr, *ttlPtr)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Serve the pool snapshot and the results feed webhook alongside the bot
	go func() {
		if err := web.Start(web.Config{Addr: *addrPtr, API: apiPtr}); err != nil {
			log.Fatalf("web server failed: %v", err)
		}
	}()

	b, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
