// Command planctl plans one mission file offline and prints the report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"mission-feasibility-service/internal/adapters/refdata"
	"mission-feasibility-service/internal/api/dto"
	"mission-feasibility-service/internal/config"
	"mission-feasibility-service/internal/platform/obs"
	"mission-feasibility-service/internal/scenario"
	"mission-feasibility-service/internal/services"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data", config.Get("DATA_DIR", "data"), "reference data directory")
	missionPath := flag.String("mission", "payloads.json", "mission request file")
	scenarioFile := flag.String("scenarios", config.Get("SCENARIO_FILE", ""), "optional scenario YAML file")
	out := flag.String("out", "", "write the report here instead of stdout")
	flag.Parse()

	lg, err := obs.NewLogger(config.Get("LOG_LEVEL", "warn"), config.Get("LOG_FILE", ""))
	if err != nil {
		log.Fatal(err)
	}

	ref, err := refdata.LoadReference(*dataDir)
	if err != nil {
		log.Fatal(err)
	}
	req, err := refdata.LoadMission(*missionPath)
	if err != nil {
		log.Fatal(err)
	}

	resolver := scenario.NewResolver()
	if *scenarioFile != "" {
		if resolver, err = scenario.LoadFile(*scenarioFile); err != nil {
			log.Fatal(err)
		}
	}

	planner := services.NewPlanner(ref, resolver, services.EnumerateOptions{}, lg)
	rep, err := planner.PlanMission(context.Background(), req)
	if err != nil {
		log.Fatal(err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewMissionReport(uuid.NewString(), rep)); err != nil {
		log.Fatal(err)
	}
}
