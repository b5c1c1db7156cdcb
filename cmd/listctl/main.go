package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/vskvj3/idxlist/internal/core"
	"github.com/vskvj3/idxlist/internal/datastructures"
	"github.com/vskvj3/idxlist/internal/utils"
)

// argParser parses and validates the command and its arguments
func argParser(input string) (utils.Command, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return utils.Command{}, fmt.Errorf("no command entered")
	}

	cmd := utils.Command{Command: strings.ToUpper(parts[0])}

	switch cmd.Command {
	case "PING", "LEN", "FORWARD", "BACKWARD", "CLEAR":
		if len(parts) > 1 {
			return utils.Command{}, fmt.Errorf("%s does not require any arguments", cmd.Command)
		}

	case "APPEND", "REMOVE", "CONTAINS":
		// The value is the rest of the line, so it may contain spaces
		if len(parts) < 2 {
			return utils.Command{}, fmt.Errorf("%s requires a value", cmd.Command)
		}
		cmd.Value = strings.TrimSpace(strings.TrimSpace(input)[len(parts[0]):])
		cmd.HasValue = true

	default:
		return utils.Command{}, fmt.Errorf("unknown command: %s", cmd.Command)
	}

	return cmd, nil
}

func main() {
	maxSizePtr := flag.Int("max_size", 0, "Maximum size of the linked list (0 for unbounded)")
	debugPtr := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	utils.NewLogger("", *debugPtr)

	var opts []datastructures.Option
	if *maxSizePtr > 0 {
		opts = append(opts, datastructures.WithMaxSize(*maxSizePtr))
	}
	handler := core.NewCommandHandler(datastructures.New(opts...))

	errorColor := color.New(color.FgRed)
	fmt.Println("Type commands (e.g., APPEND value, REMOVE value, CONTAINS value, LEN, FORWARD, BACKWARD, CLEAR, PING) and press Enter.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		// Parse and validate the input
		cmd, err := argParser(input)
		if err != nil {
			errorColor.Println("Error:", err)
			continue
		}

		// Serialize the request using MessagePack
		data, err := utils.EncodeRequest(utils.ConvertCommandToRequest(cmd))
		if err != nil {
			errorColor.Println("Error serializing request:", err)
			continue
		}

		out, err := handler.HandleRaw(data)
		if err != nil {
			errorColor.Println("Error serializing response:", err)
			continue
		}

		response, err := utils.DecodeResponse(out)
		if err != nil {
			errorColor.Println("Error deserializing response:", err)
			continue
		}

		printResponse(response, errorColor)
	}
}

func printResponse(response map[string]interface{}, errorColor *color.Color) {
	if status, _ := response["status"].(string); status != "OK" {
		errorColor.Printf("(%v) %v\n", response["code"], response["message"])
		return
	}

	switch {
	case response["message"] != nil:
		fmt.Println(response["message"])
	case response["values"] != nil:
		values, _ := response["values"].([]interface{})
		if len(values) == 0 {
			fmt.Println("(empty list)")
			return
		}
		for i, v := range values {
			fmt.Printf("%d) %v\n", i+1, v)
		}
	case response["length"] != nil:
		fmt.Println(response["length"])
	case response["found"] != nil:
		fmt.Println(response["found"])
	default:
		fmt.Println("OK")
	}
}
