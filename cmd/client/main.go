// Terminal client for pindown: joins a room, prints what the server
// broadcasts, and turns typed lines into movement intents.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"

	"pindown/protocol"
)

var (
	serverAddr = flag.String("server", "ws://localhost:8080/ws", "server websocket URL")
	roomCode   = flag.String("room", "TEST", "room code to join")
	avatar     = flag.String("avatar", "", "avatar reference")
)

var (
	infoColor  = color.New(color.FgCyan)
	lobbyColor = color.New(color.FgYellow, color.Bold)
	winColor   = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
)

func main() {
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*serverAddr, nil)
	if err != nil {
		errColor.Fprintf(os.Stderr, "dial %s: %v\n", *serverAddr, err)
		os.Exit(1)
	}
	defer conn.Close()

	join, err := protocol.Encode(protocol.MsgJoin, protocol.Join{Room: *roomCode, Avatar: *avatar})
	if err != nil {
		errColor.Fprintf(os.Stderr, "encode join: %v\n", err)
		os.Exit(1)
	}
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		errColor.Fprintf(os.Stderr, "send join: %v\n", err)
		os.Exit(1)
	}

	go readLoop(conn)

	infoColor.Println("controls: type a line of [u d l r] to move, add x to pin, blank to stop, q to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "q" {
			return
		}
		in := protocol.Input{
			Up:     strings.Contains(line, "u"),
			Down:   strings.Contains(line, "d"),
			Left:   strings.Contains(line, "l"),
			Right:  strings.Contains(line, "r"),
			Acting: strings.Contains(line, "x"),
		}
		b, err := protocol.Encode(protocol.MsgInput, in)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			errColor.Fprintf(os.Stderr, "send input: %v\n", err)
			return
		}
	}
}

func readLoop(conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			errColor.Fprintf(os.Stderr, "connection closed: %v\n", err)
			os.Exit(1)
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		switch env.T {
		case protocol.MsgJoined:
			j, err := protocol.DecodePayload[protocol.Joined](env)
			if err != nil {
				continue
			}
			infoColor.Printf("joined as seat-%d, arena %.0fx%.0f, hold for %.1fs to win\n",
				j.Role, j.Width, j.Height, j.WinSeconds)
		case protocol.MsgLobby:
			l, err := protocol.DecodePayload[protocol.Lobby](env)
			if err != nil {
				continue
			}
			lobbyColor.Printf("players in room: %d\n", l.Players)
		case protocol.MsgState:
			st, err := protocol.DecodePayload[protocol.State](env)
			if err != nil {
				continue
			}
			printState(st)
		case protocol.MsgEnd:
			e, err := protocol.DecodePayload[protocol.End](env)
			if err != nil {
				continue
			}
			winColor.Printf("game over: seat-%d wins\n", e.Winner)
		case protocol.MsgError:
			e, err := protocol.DecodePayload[protocol.Error](env)
			if err != nil {
				continue
			}
			errColor.Fprintf(os.Stderr, "server error: %s\n", e.Message)
			os.Exit(1)
		}
	}
}

// printState writes a one-line summary roughly once a second so stdout stays
// readable at the full broadcast rate.
var stateCount int

func printState(st protocol.State) {
	stateCount++
	if stateCount%protocol.BroadcastHz != 1 {
		return
	}
	parts := make([]string, 0, len(st.Players))
	for _, p := range st.Players {
		mark := " "
		if p.Dominant {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("s%d%s(%.0f,%.0f pin %.2f)", p.Role, mark, p.X, p.Y, p.Pin))
	}
	infoColor.Println(strings.Join(parts, "  "))
}
