package tools

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
)

//go:embed data/stock_data.csv
var stockDataCSV []byte

var StockIndices = []string{
	"S&P 500",
	"NASDAQ Composite",
	"Dow Jones Industrial Average",
	"Financial Times Stock Exchange 100 Index",
}

const invalidIndex = "Invalid index. Please choose from 'S&P 500', 'NASDAQ Composite', 'Dow Jones Industrial Average', 'Financial Times Stock Exchange 100 Index'."

// StockMarketTool serves daily index data from a CSV with an "Index" column
type StockMarketTool struct {
	// Data overrides the embedded sample CSV.
	Data []byte
}

func (s *StockMarketTool) Name() string {
	return "get_stock_market_data"
}

func (s *StockMarketTool) Description() string {
	return "Get the stock market data for a given index"
}

func (s *StockMarketTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"index": map[string]interface{}{
			"type": "string",
			"enum": StockIndices,
		},
	}
}

func (s *StockMarketTool) RequiredParameters() []string {
	return []string{"index"}
}

func (s *StockMarketTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	index, _ := args["index"].(string)
	if !isStockIndex(index) {
		return invalidIndex, nil
	}

	data := s.Data
	if data == nil {
		data = stockDataCSV
	}

	columns, err := stockColumns(data, index)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(columns)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isStockIndex(index string) bool {
	for _, known := range StockIndices {
		if known == index {
			return true
		}
	}
	return false
}

// stockColumns returns {column: {row number: value}} for the rows of index,
// without the Index column. Row numbers count data rows of the whole file.
func stockColumns(data []byte, index string) (map[string]map[string]interface{}, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading stock data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("stock data has no header")
	}

	header := records[0]
	indexCol := -1
	for i, name := range header {
		if name == "Index" {
			indexCol = i
		}
	}
	if indexCol < 0 {
		return nil, fmt.Errorf("stock data has no Index column")
	}

	columns := make(map[string]map[string]interface{}, len(header)-1)
	for i, name := range header {
		if i != indexCol {
			columns[name] = map[string]interface{}{}
		}
	}

	for row, record := range records[1:] {
		if record[indexCol] != index {
			continue
		}
		key := strconv.Itoa(row)
		for i, value := range record {
			if i == indexCol {
				continue
			}
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				columns[header[i]][key] = n
			} else {
				columns[header[i]][key] = value
			}
		}
	}
	return columns, nil
}
