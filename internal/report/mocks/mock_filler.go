package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockFiller struct {
	mock.Mock
}

func (m *MockFiller) Fill(templatePath, generatedText, outputPath string) (string, error) {
	args := m.Called(templatePath, generatedText, outputPath)
	return args.String(0), args.Error(1)
}
