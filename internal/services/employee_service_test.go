package services

import (
	"errors"
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmployee(t *testing.T) {
	e, err := BuildEmployee(models.EmployeeInput{
		EmpNo:           " A001 ",
		Name:            " 张三 ",
		Process:         " 涂布 ",
		Locker1FClothes: " 1f-c-01 ",
		Locker2FShoe:    "2F-S-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "A001", e.EmpNo)
	assert.Equal(t, "张三", e.Name)
	assert.Equal(t, "ZS", e.Pinyin)
	assert.Equal(t, "涂布", e.Process)
	assert.Equal(t, "1F-C-01", e.Locker1FClothes)
	assert.Equal(t, "", e.Locker1FShoe)
	assert.Equal(t, "2F-S-05", e.Locker2FShoe)
}

func TestBuildEmployee_CanonicalLockerIDs(t *testing.T) {
	e, err := BuildEmployee(models.EmployeeInput{
		EmpNo:           "P002",
		Name:            "李四",
		Locker1FClothes: "1f-c-1",
		Locker2FClothes: "2F-C-9",
		Locker1FShoe:    "bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, "1F-C-01", e.Locker1FClothes)
	assert.Equal(t, "2F-C-09", e.Locker2FClothes)
	assert.Equal(t, "BOGUS", e.Locker1FShoe)
}

func TestBuildEmployee_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		in   models.EmployeeInput
	}{
		{"missing emp no", models.EmployeeInput{Name: "张三"}},
		{"blank emp no", models.EmployeeInput{EmpNo: "  ", Name: "张三"}},
		{"missing name", models.EmployeeInput{EmpNo: "A001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEmployee(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}
