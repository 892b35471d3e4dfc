package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/txm073/rsa/server"
	"github.com/txm073/rsa/store"
	"github.com/txm073/rsa/textrsa"
)

/*
Генерация ключей в файлы public.rsa, private.rsa, charmaps.rsa
go run ./cmd/rsa -g -lower=100 -upper=1000 -v

Воспроизводимые ключи из парольной фразы
go run ./cmd/rsa -g -passphrase="secret" -salt="salt"

Шифрование / расшифрование
go run ./cmd/rsa -e "Hello World!"
go run ./cmd/rsa -d "123:456:789"

HTTP сервер поверх базы ключей
go run ./cmd/rsa -serve=:8080 -db=./keyring.db

Без флагов режима запускается меню.
*/

type options struct {
	lower, upper int64
	maxModulus   int64
	paths        store.Paths
	dbPath       string
	passphrase   string
	salt         string
	verbose      bool
}

func main() {
	generateFlag := flag.Bool("g", false, "Сгенерировать новые ключи")
	encodeFlag := flag.String("e", "", "Зашифровать сообщение")
	decodeFlag := flag.String("d", "", "Расшифровать сообщение")
	serveFlag := flag.String("serve", "", "Адрес HTTP сервера, например :8080")
	lowerFlag := flag.Int64("lower", 100, "Нижняя граница поиска простых чисел")
	upperFlag := flag.Int64("upper", 1000, "Верхняя граница поиска простых чисел")
	maxModulusFlag := flag.Int64("max-modulus", textrsa.DefaultMaxModulus, "Наибольший допустимый модуль n")
	publicFlag := flag.String("public", store.DefaultPublicFile, "Файл открытого ключа")
	privateFlag := flag.String("private", store.DefaultPrivateFile, "Файл закрытого ключа")
	charmapFlag := flag.String("charmap", store.DefaultCharmapFile, "Файл таблицы символов")
	dbFlag := flag.String("db", "", "Файл базы ключей sqlite (пусто - не сохранять)")
	passFlag := flag.String("passphrase", "", "Парольная фраза для воспроизводимой генерации")
	saltFlag := flag.String("salt", "textrsa", "Соль для парольной фразы")
	verboseFlag := flag.Bool("v", false, "Подробный вывод")
	flag.Parse()

	opts := options{
		lower:      *lowerFlag,
		upper:      *upperFlag,
		maxModulus: *maxModulusFlag,
		paths:      store.Paths{Public: *publicFlag, Private: *privateFlag, Charmap: *charmapFlag},
		dbPath:     *dbFlag,
		passphrase: *passFlag,
		salt:       *saltFlag,
		verbose:    *verboseFlag,
	}

	var err error
	switch {
	case *serveFlag != "":
		err = serve(*serveFlag, opts)
	case *generateFlag:
		err = generate(opts)
	case *encodeFlag != "":
		err = encode(opts, *encodeFlag)
	case *decodeFlag != "":
		err = decode(opts, *decodeFlag)
	default:
		menu(opts)
		return
	}
	if err != nil {
		log.Fatalf("Ошибка: %v", err)
	}
}

func newGenerator(opts options) (*textrsa.Generator, error) {
	cfg := textrsa.Config{MaxModulus: opts.maxModulus}
	if opts.verbose {
		cfg.Log = os.Stdout
	}
	if opts.passphrase != "" {
		src, err := textrsa.PassphraseSource(opts.passphrase, opts.salt)
		if err != nil {
			return nil, err
		}
		cfg.Rand = src
	}
	return textrsa.NewGenerator(cfg), nil
}

func generate(opts options) error {
	fmt.Println("\n=== ГЕНЕРАЦИЯ КЛЮЧЕЙ ===")

	gen, err := newGenerator(opts)
	if err != nil {
		return err
	}
	keys, err := gen.Generate(opts.lower, opts.upper)
	if err != nil {
		return err
	}

	fmt.Println("p =", keys.P, "q =", keys.Q)
	fmt.Println("n =", keys.Public.N)
	fmt.Println("e =", keys.Public.E)
	fmt.Println("d =", keys.Private.D)

	fmt.Println("--- Сохранение в файлы ---")
	if err := store.SaveKeys(opts.paths, keys); err != nil {
		return err
	}
	fmt.Println(opts.paths.Public, opts.paths.Private, opts.paths.Charmap)

	if opts.dbPath != "" {
		fmt.Println("--- Сохранение в БД ---")
		kr, err := store.OpenKeyring(opts.dbPath)
		if err != nil {
			return err
		}
		defer kr.Close()
		fp, err := kr.Save(context.Background(), keys)
		if err != nil {
			return err
		}
		fmt.Println("Отпечаток:", fp)
	}
	return nil
}

func encode(opts options, msg string) error {
	pub, err := store.LoadPublicKey(opts.paths.Public)
	if err != nil {
		return err
	}
	cm, err := store.LoadCharmap(opts.paths.Charmap)
	if err != nil {
		return err
	}
	ct, err := textrsa.Encode(pub, cm, msg)
	if err != nil {
		return err
	}
	fmt.Println(ct)

	if opts.dbPath != "" {
		kr, err := store.OpenKeyring(opts.dbPath)
		if err != nil {
			return err
		}
		defer kr.Close()
		return kr.RecordMessage(context.Background(), pub.Fingerprint(), ct)
	}
	return nil
}

func decode(opts options, ct string) error {
	keys, err := store.LoadKeys(opts.paths)
	if err != nil {
		return err
	}
	msg, err := textrsa.Decode(keys.Public, keys.Private, keys.Charmap, ct)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func serve(addr string, opts options) error {
	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = store.DefaultKeyringFile
	}
	kr, err := store.OpenKeyring(dbPath)
	if err != nil {
		return err
	}
	defer kr.Close()

	gen, err := newGenerator(opts)
	if err != nil {
		return err
	}

	fmt.Println("=== СЕРВЕР ===")
	fmt.Println("База ключей:", dbPath)
	fmt.Println("Адрес:", addr)
	return http.ListenAndServe(addr, server.New(kr, gen, os.Stdout).Handler())
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

func menu(opts options) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n--- МЕНЮ ---")
		fmt.Println("1. Сгенерировать ключи")
		fmt.Println("2. Зашифровать сообщение")
		fmt.Println("3. Расшифровать сообщение")
		fmt.Println("4. Изменить диапазон поиска (сейчас", opts.lower, "-", opts.upper, ")")
		fmt.Println("5. Выход")

		choice := strings.TrimSpace(readLine(reader, "Выбор: "))

		var err error
		switch choice {
		case "1":
			err = generate(opts)
		case "2":
			err = encode(opts, readLine(reader, "Сообщение: "))
		case "3":
			err = decode(opts, strings.TrimSpace(readLine(reader, "Шифротекст: ")))
		case "4":
			lower, errL := strconv.ParseInt(strings.TrimSpace(readLine(reader, "Нижняя граница: ")), 10, 64)
			upper, errU := strconv.ParseInt(strings.TrimSpace(readLine(reader, "Верхняя граница: ")), 10, 64)
			if errL != nil || errU != nil {
				fmt.Println("Ошибка: нужно целое число")
				continue
			}
			opts.lower, opts.upper = lower, upper
		case "5", "":
			fmt.Println("Выход")
			return
		default:
			fmt.Println("Неверный выбор")
		}
		if err != nil {
			fmt.Println("Ошибка:", err)
		}
	}
}
