package entities

// ConditionOperator is a comparison supported by record store queries.
type ConditionOperator string

const (
	ConditionEqual    ConditionOperator = "eq"
	ConditionNotEqual ConditionOperator = "ne"
)

// Condition compares one persisted attribute against a value. Values are
// strings or integers (status codes are passed as int).
type Condition struct {
	Attribute string
	Operator  ConditionOperator
	Value     any
}

// QueryExpression is a conjunction of conditions over one entity kind.
// Columns restricts the attributes returned; empty means all.
type QueryExpression struct {
	EntityName string
	Columns    []string
	Conditions []Condition
}

func NewQuery(entityName string, columns ...string) QueryExpression {
	return QueryExpression{EntityName: entityName, Columns: columns}
}

// Where returns a copy of q with one more condition appended.
func (q QueryExpression) Where(attr string, op ConditionOperator, value any) QueryExpression {
	conds := make([]Condition, 0, len(q.Conditions)+1)
	conds = append(conds, q.Conditions...)
	conds = append(conds, Condition{Attribute: attr, Operator: op, Value: value})
	q.Conditions = conds
	return q
}

// Find returns the first condition on attr with operator op.
func (q QueryExpression) Find(attr string, op ConditionOperator) (Condition, bool) {
	for _, c := range q.Conditions {
		if c.Attribute == attr && c.Operator == op {
			return c, true
		}
	}
	return Condition{}, false
}
