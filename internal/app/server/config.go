package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	WaitingTTL      time.Duration
	CleanupInterval time.Duration

	StorageDriver string
	DataDir       string

	AwsRegion        string
	UsersTableName   string
	MatchesTableName string
	WaitingTableName string
}

func NewConfig() Config {
	var config Config

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/server")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	viper.AutomaticEnv()

	config.Port = viper.GetString("Server.Port")
	waitingTTL, err := time.ParseDuration(viper.GetString("Matchmaking.WaitingTTL"))
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	config.WaitingTTL = waitingTTL
	cleanupInterval, err := time.ParseDuration(viper.GetString("Matchmaking.CleanupInterval"))
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	config.CleanupInterval = cleanupInterval

	config.StorageDriver = viper.GetString("Storage.Driver")
	config.DataDir = viper.GetString("Storage.DataDir")

	config.AwsRegion = viper.GetString("AWS_REGION")
	config.UsersTableName = viper.GetString("Storage.UsersTable")
	config.MatchesTableName = viper.GetString("Storage.MatchesTable")
	config.WaitingTableName = viper.GetString("Storage.WaitingTable")

	return config
}
