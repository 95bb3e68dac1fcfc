package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/couchbase"
	"gorm.io/couchbase/cli"
	"gorm.io/couchbase/logger"
)

func main() {
	// --- Flags ---
	env := flag.String("env", "dev", "Environment, reads .env.<env>")
	configDir := flag.String("config", ".", "Folder of the .env.<env> file")
	owner := flag.String("owner", "", "Owner model name, e.g.: Post")
	documents := flag.String("document", "", "Document models, e.g.: Post,Comment")
	relations := flag.String("relations", "", "Relations, e.g.: comments:Comment:has_many,author:User:belongs_to")
	morphMap := flag.String("morph", "", "Morph type aliases, e.g.: post=Post,video=Video")
	verbose := flag.Bool("v", false, "Log every resolution")

	flag.Parse()

	if *owner == "" || *relations == "" {
		fmt.Println("Use : couchrel -owner Post -document Post,Comment -relations comments:Comment:has_many,author:User:belongs_to")
		return
	}

	rels, err := cli.ParseRelations(*relations)
	if err != nil {
		log.Fatal(err)
	}

	config, err := couchbase.LoadConfig(*env, *configDir)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	level := config.LogLevel
	if *verbose {
		level = logger.Info
	}

	aliases, err := couchbase.ParseMorphMap(*morphMap)
	if err != nil {
		log.Fatal(err)
	}

	db, err := couchbase.Open(config,
		couchbase.WithLogger(logger.NewZapLoggerWithConfig(logger.Config{LogLevel: level})),
		couchbase.WithMorphMap(aliases),
	)
	if err != nil {
		log.Fatal("Failed to open: ", err)
	}
	defer db.Close()

	docs := cli.ParseList(*documents)
	if err := cli.RegisterEntities(db, docs, cli.RelationalTargets(docs, *owner, rels)); err != nil {
		log.Fatal(err)
	}

	if err := cli.Explain(db, *owner, rels, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

