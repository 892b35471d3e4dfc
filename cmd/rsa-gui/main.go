package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/txm073/rsa/store"
)

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("RSA - Шифрование текста")
	myWindow.Resize(fyne.NewSize(850, 650))

	logWidget := widget.NewMultiLineEntry()
	logWidget.SetPlaceHolder("Журнал...")
	logWidget.Disable()
	logw := newLogWriter(logWidget)

	paths := store.DefaultPaths()

	lowerEntry := widget.NewEntry()
	lowerEntry.SetText("100")
	upperEntry := widget.NewEntry()
	upperEntry.SetText("1000")
	passEntry := widget.NewPasswordEntry()
	passEntry.SetPlaceHolder("Парольная фраза (необязательно)")

	genStatus := widget.NewLabel("Готов к генерации")
	keyLabel := widget.NewLabel("Ключи: " + paths.Public)

	var genBtn *widget.Button
	genBtn = widget.NewButton("Сгенерировать ключи", func() {
		genBtn.Disable()
		genStatus.SetText("Генерация...")
		go func() {
			defer genBtn.Enable()
			fmt.Fprintln(logw, "========================================")
			keys, err := generateKeys(logw, paths, lowerEntry.Text, upperEntry.Text, passEntry.Text)
			if err != nil {
				genStatus.SetText("Ошибка генерации")
				fmt.Fprintln(logw, "Ошибка:", err)
				return
			}
			genStatus.SetText("Ключи сохранены")
			keyLabel.SetText(fmt.Sprintf("n = %d, e = %d, d = %d", keys.Public.N, keys.Public.E, keys.Private.D))
			fmt.Fprintln(logw, "Отпечаток:", keys.Public.Fingerprint())
		}()
	})

	keysTab := container.NewVBox(
		widget.NewLabelWithStyle("Генерация ключей", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Нижняя граница:"),
		lowerEntry,
		widget.NewLabel("Верхняя граница:"),
		upperEntry,
		passEntry,
		genBtn,
		genStatus,
		keyLabel,
	)

	messageEntry := widget.NewEntry()
	messageEntry.SetPlaceHolder("Введите сообщение")

	cipherEntry := widget.NewMultiLineEntry()
	cipherEntry.SetPlaceHolder("Шифротекст")

	resultLabel := widget.NewLabel("")

	encodeBtn := widget.NewButton("Зашифровать", func() {
		ct, err := encodeText(paths, messageEntry.Text)
		if err != nil {
			resultLabel.SetText("Ошибка шифрования")
			fmt.Fprintln(logw, "Ошибка:", err)
			return
		}
		cipherEntry.SetText(ct)
		fmt.Fprintln(logw, "Зашифр:", ct[:min(40, len(ct))])
	})

	decodeBtn := widget.NewButton("Расшифровать", func() {
		msg, err := decodeText(paths, strings.TrimSpace(cipherEntry.Text))
		if err != nil {
			resultLabel.SetText("Ошибка расшифрования")
			fmt.Fprintln(logw, "Ошибка:", err)
			return
		}
		resultLabel.SetText("Расшифровано: " + msg)
		fmt.Fprintln(logw, "Расшифр:", msg)
	})

	messagesTab := container.NewVBox(
		widget.NewLabelWithStyle("Сообщения", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Сообщение:"),
		messageEntry,
		encodeBtn,
		widget.NewSeparator(),
		widget.NewLabel("Шифротекст:"),
		cipherEntry,
		decodeBtn,
		resultLabel,
	)

	logScroll := container.NewScroll(logWidget)
	logScroll.SetMinSize(fyne.NewSize(810, 200))

	tabs := container.NewAppTabs(
		container.NewTabItem("1. Ключи", keysTab),
		container.NewTabItem("2. Сообщения", messagesTab),
	)

	logContainer := container.NewVBox(
		widget.NewLabelWithStyle("Журнал", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		logScroll,
	)

	content := container.NewVSplit(tabs, logContainer)
	content.SetOffset(0.55)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
