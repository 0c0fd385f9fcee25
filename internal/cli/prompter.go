package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
)

// ErrInputTerminated is returned when input ends before a prompt is answered.
var ErrInputTerminated = errors.New("input terminated")

// QuotePrompter asks for the vehicle, down payment and period line by line.
type QuotePrompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewQuotePrompter creates a prompter. Nil arguments default to stdin and stdout.
func NewQuotePrompter(reader io.Reader, writer io.Writer) *QuotePrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &QuotePrompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// PromptRequest walks through every question and returns the chosen vehicle
// and a request for it.
func (p *QuotePrompter) PromptRequest(ctx context.Context, cat *catalog.Catalog, table *ratetable.Table) (model.Vehicle, model.QuoteRequest, error) {
	vehicle, err := p.PromptVehicle(ctx, cat)
	if err != nil {
		return model.Vehicle{}, model.QuoteRequest{}, err
	}

	defaultPercent, _ := table.DefaultDownPercent()
	down, err := p.PromptDownPayment(ctx, vehicle.Price, defaultPercent)
	if err != nil {
		return model.Vehicle{}, model.QuoteRequest{}, err
	}

	period, err := p.PromptPeriod(ctx)
	if err != nil {
		return model.Vehicle{}, model.QuoteRequest{}, err
	}

	return vehicle, model.QuoteRequest{
		DownPayment: down,
		Price:       vehicle.Price,
		Period:      period,
	}, nil
}

// PromptVehicle asks for a model and then one of its sub models.
func (p *QuotePrompter) PromptVehicle(ctx context.Context, cat *catalog.Catalog) (model.Vehicle, error) {
	modelName, err := p.pick(ctx, "Model", cat.Models(), nil)
	if err != nil {
		return model.Vehicle{}, err
	}

	subModel, err := p.pick(ctx, "Sub model", cat.SubModels(modelName), nil)
	if err != nil {
		return model.Vehicle{}, err
	}

	vehicle, err := cat.Find(modelName, subModel)
	if err != nil {
		return model.Vehicle{}, err
	}

	p.println(infoStyle.Render(fmt.Sprintf("%s: %s", vehicle.DisplayName(), DefaultRounding.Money(vehicle.Price))))
	return vehicle, nil
}

// PromptDownPayment asks whether the down payment is an amount or a
// percentage, then for its value. An empty percentage accepts defaultPercent
// when it is positive.
func (p *QuotePrompter) PromptDownPayment(ctx context.Context, price, defaultPercent float64) (model.DownPayment, error) {
	p.println(FormatPrompt("Down payment as:"))
	p.println("  [A] Amount in baht")
	p.println("  [P] Percentage of the price")

	mode, err := p.promptChoice(ctx, "Choice", []string{"a", "p"})
	if err != nil {
		return model.DownPayment{}, err
	}

	if mode == "a" {
		amount, err := p.promptNumber(ctx, "Amount", 0, price, -1)
		if err != nil {
			return model.DownPayment{}, err
		}
		return model.AmountDown(amount), nil
	}

	prompt := "Percent"
	fallback := -1.0
	if defaultPercent > 0 {
		prompt = fmt.Sprintf("Percent [%s]", Percent(defaultPercent))
		fallback = defaultPercent
	}
	percent, err := p.promptNumber(ctx, prompt, 0, 100, fallback)
	if err != nil {
		return model.DownPayment{}, err
	}
	return model.PercentDown(percent), nil
}

// PromptPeriod asks for one of the allowed periods, by option number or months.
func (p *QuotePrompter) PromptPeriod(ctx context.Context) (model.Period, error) {
	options := make([]string, len(model.AllowedPeriods))
	for i, period := range model.AllowedPeriods {
		options[i] = period.String()
	}

	// "60" and "60m" are accepted as well as "60 months".
	canonical := func(input string) string {
		if period, err := model.ParsePeriod(input); err == nil {
			return period.String()
		}
		return input
	}

	choice, err := p.pick(ctx, "Period", options, canonical)
	if err != nil {
		return 0, err
	}
	return model.ParsePeriod(choice)
}

// pick lists options and accepts an option number or the option text.
// canonical, when set, rewrites input before it is compared to the options.
func (p *QuotePrompter) pick(ctx context.Context, label string, options []string, canonical func(string) string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no %s options available", strings.ToLower(label))
	}

	p.println(FormatPrompt(label + " options:"))
	for i, option := range options {
		p.println(fmt.Sprintf("  [%d] %s", i+1, option))
	}

	for {
		input, err := p.promptLine(ctx, label)
		if err != nil {
			return "", err
		}

		if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		if canonical != nil {
			input = canonical(input)
		}
		for _, option := range options {
			if strings.EqualFold(input, option) {
				return option, nil
			}
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}

func (p *QuotePrompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.promptLine(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}

// promptNumber reads a number in [minValue, maxValue]. Thousands separators
// and a trailing % are accepted. A negative fallback means input is required.
func (p *QuotePrompter) promptNumber(ctx context.Context, prompt string, minValue, maxValue, fallback float64) (float64, error) {
	for {
		input, err := p.promptLine(ctx, prompt)
		if err != nil {
			return 0, err
		}

		if input == "" && fallback >= 0 {
			return fallback, nil
		}

		value, convErr := ParseNumber(input)
		switch {
		case convErr != nil:
			p.println(FormatError("Please enter a number."))
		case value < minValue || value > maxValue:
			p.println(FormatError(fmt.Sprintf("Please enter a value between %s and %s.",
				strconv.FormatFloat(minValue, 'f', -1, 64), strconv.FormatFloat(maxValue, 'f', -1, 64))))
		default:
			return value, nil
		}
	}
}

func (p *QuotePrompter) promptLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputTerminated
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (p *QuotePrompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt output", "error", err)
	}
}
