package repository

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"quote_rollup/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrUnsupportedQuery = errors.New("unsupported query expression")

type quoteAttr struct {
	names   []string
	numeric bool
}

// Logical quote attributes and the item attributes that hold them.
var quoteAttrs = map[string]quoteAttr{
	entities.QuoteAttrID:            {names: []string{"id"}},
	entities.QuoteAttrName:          {names: []string{"name"}},
	entities.QuoteAttrOpportunityID: {names: []string{"opportunity_id"}},
	entities.QuoteAttrStatusCode:    {names: []string{"status_code"}, numeric: true},
	entities.QuoteAttrStateCode:     {names: []string{"state_code"}, numeric: true},
	entities.QuoteAttrTotalAmount:   {names: []string{"amount", "currency"}},
}

// dynamoQueryPlan is the request shape for one QueryExpression. An empty
// KeyCondition means the plan has to scan the table.
type dynamoQueryPlan struct {
	IndexName    string
	KeyCondition string
	Filter       string
	Projection   string
	Names        map[string]string
	Values       map[string]types.AttributeValue
}

// buildQuoteQueryPlan translates a QueryExpression into a DynamoDB request.
// The first equality on opportunityid becomes the key condition of the
// opportunity index; every other condition becomes a filter.
func buildQuoteQueryPlan(q entities.QueryExpression, opportunityIndex string) (dynamoQueryPlan, error) {
	if !strings.EqualFold(q.EntityName, entities.EntityQuote) {
		return dynamoQueryPlan{}, fmt.Errorf("%w: entity %q", ErrUnsupportedQuery, q.EntityName)
	}

	plan := dynamoQueryPlan{
		Names:  map[string]string{},
		Values: map[string]types.AttributeValue{},
	}

	var filters []string
	for i, c := range q.Conditions {
		attr, ok := quoteAttrs[strings.ToLower(c.Attribute)]
		if !ok || len(attr.names) != 1 {
			return dynamoQueryPlan{}, fmt.Errorf("%w: attribute %q", ErrUnsupportedQuery, c.Attribute)
		}
		val, err := conditionValue(c.Value, attr.numeric)
		if err != nil {
			return dynamoQueryPlan{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedQuery, c.Attribute, err)
		}

		if plan.KeyCondition == "" && c.Operator == entities.ConditionEqual && attr.names[0] == "opportunity_id" {
			plan.IndexName = opportunityIndex
			plan.KeyCondition = "#k = :k"
			plan.Names["#k"] = attr.names[0]
			plan.Values[":k"] = val
			continue
		}

		var op string
		switch c.Operator {
		case entities.ConditionEqual:
			op = "="
		case entities.ConditionNotEqual:
			op = "<>"
		default:
			return dynamoQueryPlan{}, fmt.Errorf("%w: operator %q", ErrUnsupportedQuery, c.Operator)
		}

		name, value := "#f"+strconv.Itoa(i), ":f"+strconv.Itoa(i)
		plan.Names[name] = attr.names[0]
		plan.Values[value] = val
		filters = append(filters, name+" "+op+" "+value)
	}
	plan.Filter = strings.Join(filters, " AND ")

	projection, err := projectionFor(q.Columns, plan.Names)
	if err != nil {
		return dynamoQueryPlan{}, err
	}
	plan.Projection = projection
	return plan, nil
}

// projectionFor returns a projection expression for the given logical
// columns, registering the placeholders in names. The item id is always
// projected. Empty columns means every attribute.
func projectionFor(columns []string, names map[string]string) (string, error) {
	if len(columns) == 0 {
		return "", nil
	}

	set := map[string]struct{}{"id": {}}
	for _, c := range columns {
		attr, ok := quoteAttrs[strings.ToLower(c)]
		if !ok {
			return "", fmt.Errorf("%w: column %q", ErrUnsupportedQuery, c)
		}
		for _, n := range attr.names {
			set[n] = struct{}{}
		}
	}

	attrs := make([]string, 0, len(set))
	for n := range set {
		attrs = append(attrs, n)
	}
	sort.Strings(attrs)

	parts := make([]string, 0, len(attrs))
	for _, n := range attrs {
		p := "#p_" + n
		names[p] = n
		parts = append(parts, p)
	}
	return strings.Join(parts, ", "), nil
}

func conditionValue(v any, numeric bool) (types.AttributeValue, error) {
	if numeric {
		var n int
		switch x := v.(type) {
		case int:
			n = x
		case int32:
			n = int(x)
		case int64:
			n = int(x)
		case entities.QuoteStatus:
			n = int(x)
		case entities.QuoteState:
			n = int(x)
		default:
			return nil, fmt.Errorf("expected an integer, got %T", v)
		}
		return &types.AttributeValueMemberN{Value: strconv.Itoa(n)}, nil
	}

	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", v)
	}
	return &types.AttributeValueMemberS{Value: s}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalNames(names map[string]string) map[string]string {
	if len(names) == 0 {
		return nil
	}
	return names
}

func optionalValues(values map[string]types.AttributeValue) map[string]types.AttributeValue {
	if len(values) == 0 {
		return nil
	}
	return values
}
