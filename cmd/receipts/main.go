package main

import (
	"log"
	"os"

	"syrupstore/internal/handler"
	"syrupstore/internal/receipt"
	"syrupstore/internal/server"

	"github.com/joho/godotenv"
)

// レシートPDFサービス。APIサーバーとは独立して動く小さなechoアプリ。
func main() {
	_ = godotenv.Load()

	storeName := os.Getenv("STORE_NAME")
	if storeName == "" {
		storeName = "Maple Syrup Store"
	}
	dir := os.Getenv("RECEIPT_DIR")
	if dir == "" {
		dir = "receipts"
	}

	renderer, err := receipt.NewRenderer(storeName, dir)
	if err != nil {
		log.Fatal(err)
	}

	e := server.New()
	handler.NewReceiptHandler(renderer).RegisterRoutes(e)

	addr := os.Getenv("RECEIPT_PORT")
	if addr == "" {
		addr = "8001"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
