package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"pindown/game"
	"pindown/protocol"
	"pindown/room"
)

// Config is the deployment surface: where to listen and what rooms look like.
type Config struct {
	Addr string
	Room room.Config
}

func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
		return
	}
	log.Println("Successfully loaded environment variables")
}

// Load reads the configuration from the environment, falling back to the
// built-in defaults for anything unset.
func Load() Config {
	return Config{
		Addr: getString("PINDOWN_ADDR", ":8080"),
		Room: room.Config{
			Arena: game.Arena{
				Width:      getFloat("PINDOWN_ARENA_WIDTH", game.DefaultArenaWidth),
				Height:     getFloat("PINDOWN_ARENA_HEIGHT", game.DefaultArenaHeight),
				Radius:     getFloat("PINDOWN_TOKEN_RADIUS", game.DefaultTokenRadius),
				WinSeconds: getFloat("PINDOWN_WIN_SECONDS", game.DefaultWinSeconds),
			},
			TickHz: getInt("PINDOWN_TICK_HZ", protocol.SimTickHz),
		},
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, def)
		return def
	}
	return n
}
