package main

// @title Weather Predictor API
// @version 1.0
// @description Classifies the next five days of weather for a city from its OpenWeatherMap forecast.
// @BasePath /
// @schemes http https
