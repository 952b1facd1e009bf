package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockRange(t *testing.T) {
	tests := []struct {
		name     string
		cmd      listCmd
		height   int
		from, to int
	}{
		{name: "last blocks", cmd: listCmd{limit: 10}, height: 25, from: 15, to: 25},
		{name: "short chain", cmd: listCmd{limit: 10}, height: 4, from: 0, to: 4},
		{name: "empty chain", cmd: listCmd{limit: 10}, height: 0, from: 0, to: 0},
		{name: "explicit range", cmd: listCmd{from: 3, to: 8, limit: 10}, height: 25, from: 3, to: 8},
		{name: "to past height", cmd: listCmd{from: 3, to: 80, limit: 10}, height: 25, from: 3, to: 25},
		{name: "from only", cmd: listCmd{from: 20, limit: 10}, height: 25, from: 20, to: 25},
		{name: "from past height", cmd: listCmd{from: 30, limit: 10}, height: 25, from: 25, to: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.cmd.blockRange(tt.height)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestListValidate(t *testing.T) {
	c := listCmd{channelID: "mychannel", limit: 10, output: "table"}
	assert.NoError(t, c.validate())

	c.output = "xml"
	assert.Error(t, c.validate())

	c = listCmd{channelID: "mychannel", limit: 0, output: "table"}
	assert.EqualError(t, c.validate(), "--limit must be positive")

	c = listCmd{channelID: "mychannel", limit: 10, watch: true, output: "table"}
	assert.EqualError(t, c.validate(), "--interval must be positive")
}
