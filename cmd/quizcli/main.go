package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"quizforge"
)

func main() {
	var (
		content     = flag.String("content", "", "Content to build the quiz from")
		contentFile = flag.String("content-file", "", "Read quiz content from a file instead")
		level       = flag.String("level", "Medium", "Difficulty level (Easy, Medium, Hard)")
		apiKey      = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		model       = flag.String("model", "", "Model name (default: GPT-4o)")
		callLogPath = flag.String("calllog", "", "SQLite file to record model call transcripts")
		verbose     = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	quizforge.SetVerbose(*verbose)

	if *contentFile != "" {
		data, err := os.ReadFile(*contentFile)
		if err != nil {
			log.Fatalf("Failed to read content file: %v", err)
		}
		*content = string(data)
	}

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	var gen quizforge.TextGenerator = quizforge.NewOpenAIGenerator(*apiKey, *model)

	if *callLogPath != "" {
		callLog, err := quizforge.OpenCallLog(*callLogPath)
		if err != nil {
			log.Fatalf("Failed to open call log: %v", err)
		}
		defer callLog.Close()
		gen = quizforge.NewLoggedGenerator(gen, callLog)
	}

	scanner := bufio.NewScanner(os.Stdin)
	session := quizforge.NewSession()

	for {
		if strings.TrimSpace(*content) == "" {
			fmt.Print("Enter your content (one line): ")
			if !scanner.Scan() {
				return
			}
			*content = scanner.Text()
		}

		fmt.Println("Generating quiz, please wait...")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := session.Generate(ctx, gen, *content, quizforge.ParseLevel(*level))
		cancel()
		if err != nil {
			log.Fatalf("%v", err)
		}

		playQuiz(session, scanner)

		fmt.Print("\nGenerate another quiz? Paste new content, or press Enter to quit: ")
		if !scanner.Scan() {
			return
		}
		*content = scanner.Text()
		if strings.TrimSpace(*content) == "" {
			return
		}
	}
}

func playQuiz(session *quizforge.Session, scanner *bufio.Scanner) {
	fmt.Println()
	for i, question := range session.Questions {
		fmt.Printf("Q%d. %s\n", i+1, question.Text)
		for _, opt := range question.Options {
			fmt.Printf("  %s) %s\n", opt.Label, opt.Text)
		}

		for {
			fmt.Print("Your answer (A/B/C/D): ")
			if !scanner.Scan() {
				return
			}
			answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if answer == "A" || answer == "B" || answer == "C" || answer == "D" {
				if err := session.Select(i, answer); err != nil {
					log.Fatalf("Failed to record answer: %v", err)
				}
				break
			}
			fmt.Println("Please enter A, B, C, or D")
		}
		fmt.Println()
	}

	result, err := session.Submit()
	if err != nil {
		log.Fatalf("Failed to grade quiz: %v", err)
	}

	fmt.Println("Quiz Results:")
	for i, grade := range result.Grades {
		switch {
		case grade.Skipped:
			fmt.Printf("  Q%d: Skipped (no matching answer option)\n", i+1)
		case grade.Correct:
			fmt.Printf("  Q%d: Correct (Your Answer: %s)\n", i+1, session.Selections[i])
		default:
			fmt.Printf("  Q%d: Incorrect (Your Answer: %s)\n", i+1, session.Selections[i])
			fmt.Printf("      Correct Answer: %s) %s\n", session.Questions[i].CorrectLabel, grade.CorrectText)
		}
	}

	fmt.Printf("\nFinal Score: %d/%d\n", result.Score, result.Total)
	fmt.Println(quizforge.FeedbackMessage(result.Score, result.Total))
}
