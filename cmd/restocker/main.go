// Command restocker publishes a stock-replenishment message read from
// stdin, e.g.:
//
//	echo '{"product_id":"...","amount":25}' | restocker
package main

import (
	"encoding/json"
	"log"
	"os"

	stan "github.com/nats-io/stan.go"

	"github.com/example/inventory-order-service/internal/usecase"
)

func main() {
	clusterID := getenv("STAN_CLUSTER_ID", "inventory-cluster")
	clientID := getenv("STAN_PUB_ID", "inventory-restocker")
	natsURL := getenv("NATS_URL", "nats://localhost:4222")
	subject := getenv("RESTOCK_SUBJECT", "stock.restock")

	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(natsURL))
	if err != nil {
		log.Fatalf("stan connect: %v", err)
	}
	defer sc.Close()

	var msg usecase.RestockMessage
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&msg); err != nil {
		log.Fatalf("read json from stdin: %v", err)
	}
	if msg.ProductID == "" || msg.Amount <= 0 {
		log.Fatalf("need product_id and a positive amount")
	}
	b, err := json.Marshal(msg)
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := sc.Publish(subject, b); err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Printf("published restock of %d for %s to %s", msg.Amount, msg.ProductID, subject)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
