// Package rules holds the rewrite passes applied to a parsed grammar
// document. Each pass reads one configuration section and mutates rules in
// place; the pipeline order is fixed by All.
//
// Назначение: канонизация отступов, скобок, пробелов и выравнивания.
// Не делает: разбор текста, IO, анализ Ruby-кода внутри действий.
// Зависимости: internal/ast, internal/config.
package rules
