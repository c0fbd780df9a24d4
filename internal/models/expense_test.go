package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		wantErr bool
	}{
		{
			name: "valid two-way split",
			expense: Expense{
				Description: "Groceries",
				Amount:      decimal.NewFromInt(100),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits: []Split{
					{MemberID: "m1", Amount: decimal.NewFromInt(50)},
					{MemberID: "m2", Amount: decimal.NewFromInt(50)},
				},
			},
		},
		{
			name: "split sum off by one cent is tolerated",
			expense: Expense{
				Description: "Dinner",
				Amount:      decimal.NewFromInt(100),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits: []Split{
					{MemberID: "m1", Amount: decimal.RequireFromString("33.33")},
					{MemberID: "m2", Amount: decimal.RequireFromString("33.33")},
					{MemberID: "m3", Amount: decimal.RequireFromString("33.33")},
				},
			},
		},
		{
			name: "split sum short by ten",
			expense: Expense{
				Description: "Rent",
				Amount:      decimal.NewFromInt(100),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits: []Split{
					{MemberID: "m1", Amount: decimal.NewFromInt(45)},
					{MemberID: "m2", Amount: decimal.NewFromInt(45)},
				},
			},
			wantErr: true,
		},
		{
			name: "zero amount",
			expense: Expense{
				Description: "Nothing",
				Amount:      decimal.Zero,
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits:      []Split{{MemberID: "m1", Amount: decimal.Zero}},
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			expense: Expense{
				Description: "Refund",
				Amount:      decimal.NewFromInt(-10),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits:      []Split{{MemberID: "m1", Amount: decimal.NewFromInt(-10)}},
			},
			wantErr: true,
		},
		{
			name: "empty split set",
			expense: Expense{
				Description: "Taxi",
				Amount:      decimal.NewFromInt(20),
				PaidBy:      "m1",
				FamilyID:    "f1",
			},
			wantErr: true,
		},
		{
			name: "duplicate split member",
			expense: Expense{
				Description: "Cinema",
				Amount:      decimal.NewFromInt(20),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits: []Split{
					{MemberID: "m2", Amount: decimal.NewFromInt(10)},
					{MemberID: "m2", Amount: decimal.NewFromInt(10)},
				},
			},
			wantErr: true,
		},
		{
			name: "negative split amount",
			expense: Expense{
				Description: "Utilities",
				Amount:      decimal.NewFromInt(10),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits: []Split{
					{MemberID: "m1", Amount: decimal.NewFromInt(20)},
					{MemberID: "m2", Amount: decimal.NewFromInt(-10)},
				},
			},
			wantErr: true,
		},
		{
			name: "empty description",
			expense: Expense{
				Description: "   ",
				Amount:      decimal.NewFromInt(10),
				PaidBy:      "m1",
				FamilyID:    "f1",
				Splits:      []Split{{MemberID: "m1", Amount: decimal.NewFromInt(10)}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error %v does not wrap ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		members []string
		want    []string
	}{
		{
			name:    "even division",
			total:   "90",
			members: []string{"a", "b", "c"},
			want:    []string{"30", "30", "30"},
		},
		{
			name:    "remainder cents go to earliest members",
			total:   "100",
			members: []string{"a", "b", "c"},
			want:    []string{"33.34", "33.33", "33.33"},
		},
		{
			name:    "two remainder cents",
			total:   "0.05",
			members: []string{"a", "b", "c"},
			want:    []string{"0.02", "0.02", "0.01"},
		},
		{
			name:    "single member gets everything",
			total:   "42.37",
			members: []string{"a"},
			want:    []string{"42.37"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := dec(t, tt.total)
			splits := SplitEqually(total, tt.members)
			if len(splits) != len(tt.want) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.want))
			}

			sum := decimal.Zero
			for i, split := range splits {
				want := dec(t, tt.want[i])
				if !split.Amount.Equal(want) {
					t.Errorf("split %d (%s) = %s, want %s", i, split.MemberID, split.Amount, want)
				}
				sum = sum.Add(split.Amount)
			}
			if !sum.Equal(total) {
				t.Errorf("split sum = %s, want exactly %s", sum, total)
			}
		})
	}

	t.Run("no members", func(t *testing.T) {
		if got := SplitEqually(decimal.NewFromInt(10), nil); got != nil {
			t.Errorf("expected nil splits, got %v", got)
		}
	})
}
