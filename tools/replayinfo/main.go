package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"photocrop-server/internal/domain"
	"photocrop-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayinfo info <file.pcrp>")
			return
		}
		session, err := load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		printSession(session, true)
	case "list":
		dir := "replays"
		if len(os.Args) >= 3 {
			dir = os.Args[2]
		}
		files, err := filepath.Glob(filepath.Join(dir, "*.pcrp"))
		if err != nil {
			fmt.Printf("Bad directory: %v\n", err)
			os.Exit(1)
		}
		for _, f := range files {
			session, err := load(f)
			if err != nil {
				fmt.Printf("%s: %v\n", filepath.Base(f), err)
				continue
			}
			fmt.Printf("%s: ", filepath.Base(f))
			printSession(session, false)
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayinfo format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load(path string) (*domain.ReplaySession, error) {
	svc := &storage.ReplayService{SaveDir: filepath.Dir(path)}
	return svc.Load(path)
}

func printSession(s *domain.ReplaySession, verbose bool) {
	fmt.Printf("%s/%02d seed=%d recorded=%s actions=%d\n",
		s.World, s.LevelNumber, s.Seed,
		time.Unix(s.Timestamp, 0).Format(time.RFC3339), len(s.Actions))
	if !verbose {
		return
	}
	for _, a := range s.Actions {
		fmt.Printf("  #%03d %-6s %s %s\n", a.Seq, a.Action, a.Token, string(a.Payload))
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр записанных сессий .pcrp
Commands:
  info <file>            - заголовок и список команд реплея
  list [dir]             - краткая сводка по всем реплеям каталога (по умолчанию replays)
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
