package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors         int
	QuotesSaved         int
	AddressesAccepted   int
	ValidationFailures  int
	AggregatorFailures  int
	QueuedSubmissions   int
	NotificationsSent   int
	NotificationsFailed int
	FailedChannels      map[string]int
	ErrorPatterns       map[string]int
}

func main() {
	// Get today's date for log file names
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	// Initialize stats
	stats := &LogStats{
		FailedChannels: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	// Analyze error logs
	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)

	// Analyze info logs
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	// Print report
	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		// Count aggregator fall-backs
		if strings.Contains(line, "Aggregator submission failed") {
			stats.AggregatorFailures++
		}

		// Count submissions queued after a network failure
		if strings.Contains(line, "Submit endpoint unavailable") {
			stats.QueuedSubmissions++
		}

		// Count notification failures per channel
		if strings.Contains(line, "Notification failed") {
			stats.NotificationsFailed++
			extractFailedChannel(line, stats)
		}

		// Extract error patterns
		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		// Count persisted quotes
		if strings.Contains(line, "Quote saved") {
			stats.QuotesSaved++
		}

		// Count accepted address steps
		if strings.Contains(line, "Address accepted for form session") {
			stats.AddressesAccepted++
		}

		// Count ingest validation rejections
		if strings.Contains(line, "Quote submission failed validation") {
			stats.ValidationFailures++
		}

		// Count delivered notifications
		if strings.Contains(line, "Notification sent") {
			stats.NotificationsSent++
		}
	}
}

func extractFailedChannel(line string, stats *LogStats) {
	// Extract channel name from the notification log line
	channelRegex := regexp.MustCompile(`channel=(\w+)`)
	if m := channelRegex.FindStringSubmatch(line); m != nil {
		stats.FailedChannels[m[1]]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Extract the main error message
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Quote Funnel:")
	fmt.Printf("   Addresses Accepted: %d\n", stats.AddressesAccepted)
	fmt.Printf("   Quotes Saved: %d\n", stats.QuotesSaved)
	fmt.Printf("   Validation Rejections: %d\n", stats.ValidationFailures)
	fmt.Printf("   Submissions Queued (backend down): %d\n", stats.QueuedSubmissions)

	fmt.Println("\n2. Upstream Services:")
	fmt.Printf("   Aggregator Fall-backs: %d\n", stats.AggregatorFailures)
	fmt.Printf("   Notifications Sent: %d\n", stats.NotificationsSent)
	fmt.Printf("   Notifications Failed: %d\n", stats.NotificationsFailed)
	for channel, count := range stats.FailedChannels {
		fmt.Printf("     %s: %d failures\n", channel, count)
	}

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n4. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
