package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/txm073/rsa/store"
	"github.com/txm073/rsa/textrsa"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func viewKeys(ctx context.Context, kr *store.Keyring) {
	fmt.Println("\n=== ТАБЛИЦА KEYS ===")

	records, err := kr.List(ctx)
	if err != nil {
		fmt.Println("Ошибка:", err)
		return
	}

	for i, rec := range records {
		fmt.Println("\n--- Ключ", i+1, "---")
		fmt.Println("Отпечаток:", rec.Fingerprint)
		fmt.Println("p =", rec.Keys.P, "q =", rec.Keys.Q)
		fmt.Println("n =", rec.Keys.Public.N)
		fmt.Println("e =", rec.Keys.Public.E)
		fmt.Println("d =", rec.Keys.Private.D)
		fmt.Println("Символов в таблице:", rec.Keys.Charmap.Len())
		fmt.Println("Создан:", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if len(records) == 0 {
		fmt.Println("Нет ключей")
	} else {
		fmt.Println("\nВсего ключей:", len(records))
	}
}

func searchKey(ctx context.Context, kr *store.Keyring, reader *bufio.Reader) {
	fp := readLine(reader, "\nВведите отпечаток для поиска: ")

	fmt.Println("\n=== ПОИСК КЛЮЧА:", truncate(fp, 16), "===")

	rec, err := kr.Get(ctx, fp)
	if errors.Is(err, store.ErrKeyNotFound) {
		fmt.Println("Ключ не найден")
		return
	}
	if err != nil {
		fmt.Println("Ошибка:", err)
		return
	}

	fmt.Println("n =", rec.Keys.Public.N)
	fmt.Println("e =", rec.Keys.Public.E)
	fmt.Println("d =", rec.Keys.Private.D)
	if err := rec.Keys.Validate(); err != nil {
		fmt.Println("Ключ повреждён:", err)
	} else {
		fmt.Println("Ключ корректен")
	}
}

func showStats(ctx context.Context, kr *store.Keyring) {
	fmt.Println("\n=== СТАТИСТИКА БД ===")

	st, err := kr.Stats(ctx)
	if err != nil {
		fmt.Println("Ошибка:", err)
		return
	}
	fmt.Println("Ключей:", st.Keys)
	fmt.Println("Сообщений:", st.Messages)
}

func viewHistory(ctx context.Context, kr *store.Keyring, reader *bufio.Reader) {
	fp := readLine(reader, "\nВведите отпечаток: ")

	fmt.Println("\n=== ИСТОРИЯ СООБЩЕНИЙ:", truncate(fp, 16), "===")

	rec, err := kr.Get(ctx, fp)
	if err != nil {
		fmt.Println("Ошибка:", err)
		return
	}
	history, err := kr.History(ctx, fp)
	if err != nil {
		fmt.Println("Ошибка:", err)
		return
	}

	for i, m := range history {
		msg, err := textrsa.Decode(rec.Keys.Public, rec.Keys.Private, rec.Keys.Charmap, m.Ciphertext)
		if err != nil {
			msg = "<" + err.Error() + ">"
		}
		fmt.Printf("\n%d. %s | %s | %s\n", i+1, m.CreatedAt.Format("2006-01-02 15:04:05"), truncate(m.Ciphertext, 40), msg)
	}

	if len(history) == 0 {
		fmt.Println("Нет сообщений")
	} else {
		fmt.Println("\nВсего сообщений:", len(history))
	}
}

func deleteKey(ctx context.Context, kr *store.Keyring, reader *bufio.Reader) {
	fp := readLine(reader, "\nВведите отпечаток для удаления: ")

	exists, err := kr.Exists(ctx, fp)
	if err != nil || !exists {
		fmt.Println("Ключ не найден")
		return
	}

	if readLine(reader, "Вы уверены? (yes/no): ") != "yes" {
		fmt.Println("Отменено")
		return
	}

	if err := kr.Delete(ctx, fp); err != nil {
		fmt.Println("Ошибка удаления:", err)
		return
	}
	fmt.Println("Ключ", truncate(fp, 16), "удален")
}

func clearTables(ctx context.Context, kr *store.Keyring, reader *bufio.Reader) {
	if readLine(reader, "\nВы уверены?  Это удалит ВСЕ данные! (yes/no): ") != "yes" {
		fmt.Println("Отменено")
		return
	}
	if err := kr.Clear(ctx); err != nil {
		fmt.Println("Ошибка при очистке:", err)
		return
	}
	fmt.Println("Все таблицы очищены")
}

func main() {
	dbFlag := flag.String("db", store.DefaultKeyringFile, "Файл базы ключей sqlite")
	flag.Parse()

	kr, err := store.OpenKeyring(*dbFlag)
	if err != nil {
		fmt.Println("Ошибка открытия БД:", err)
		return
	}
	defer kr.Close()

	ctx := context.Background()

	fmt.Println("=== ПРОСМОТР БАЗЫ КЛЮЧЕЙ ===")
	fmt.Println("Файл: ", *dbFlag)

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n--- МЕНЮ ---")
		fmt.Println("1. Показать все ключи")
		fmt.Println("2. Найти ключ по отпечатку")
		fmt.Println("3. Статистика")
		fmt.Println("4. История сообщений ключа")
		fmt.Println("5. Удалить ключ")
		fmt.Println("6. Очистить все таблицы")
		fmt.Println("7. Выход")

		switch readLine(reader, "Выбор: ") {
		case "1":
			viewKeys(ctx, kr)
		case "2":
			searchKey(ctx, kr, reader)
		case "3":
			showStats(ctx, kr)
		case "4":
			viewHistory(ctx, kr, reader)
		case "5":
			deleteKey(ctx, kr, reader)
		case "6":
			clearTables(ctx, kr, reader)
		case "7", "":
			fmt.Println("Выход")
			return
		default:
			fmt.Println("Неверный выбор")
		}
	}
}
