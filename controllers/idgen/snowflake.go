package idgen

import (
	"fmt"
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() int64 {
	return node.Generate().Int64()
}

// GenerateOrderNo builds a unique sales order number
func GenerateOrderNo() string {
	return fmt.Sprintf("SO-%d", GenerateID())
}

// GenerateReportNo builds a unique report number
func GenerateReportNo() string {
	return fmt.Sprintf("RPT-%d", GenerateID())
}
